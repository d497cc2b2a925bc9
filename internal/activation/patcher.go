// Package activation patches the shell activation scripts of a virtual
// environment: appending text to the activation body and nesting text inside
// the deactivate routine.
package activation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/hbjs97/aiida-project/internal/shell"
	"github.com/rs/zerolog"
)

var (
	// ErrActivationFileMissing는 환경 생성 전에 스크립트를 수정하려 할 때 반환된다.
	ErrActivationFileMissing = errors.New("활성화 스크립트 없음")
	// ErrMarkerNotFound는 활성화 스크립트에 deactivate 마커가 없을 때 반환된다.
	ErrMarkerNotFound = errors.New("deactivate 마커를 찾을 수 없음")
)

// InsertMode는 마커가 여러 번 나타날 때의 삽입 정책이다.
type InsertMode int

const (
	// InsertFirst는 첫 번째 마커 뒤에만 삽입한다.
	InsertFirst InsertMode = iota
	// InsertAll은 모든 마커 뒤에 삽입한다.
	InsertAll
)

const indent = "    "

// Patcher는 하나의 셸 활성화 스크립트를 수정한다.
type Patcher struct {
	path    string
	profile shell.Profile
	mode    InsertMode
	log     zerolog.Logger
}

// Option은 Patcher 설정 함수다.
type Option func(*Patcher)

// WithMode는 마커 삽입 정책을 지정한다.
func WithMode(m InsertMode) Option {
	return func(p *Patcher) { p.mode = m }
}

// WithLogger는 로거를 지정한다.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Patcher) { p.log = l }
}

// New는 <venvPath>/bin/<activate file> 을 대상으로 하는 Patcher를 생성한다.
func New(venvPath string, profile shell.Profile, opts ...Option) *Patcher {
	p := &Patcher{
		path:    filepath.Join(venvPath, "bin", profile.ActivateFile),
		profile: profile,
		mode:    InsertFirst,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path는 대상 활성화 스크립트 경로다.
func (p *Patcher) Path() string {
	return p.path
}

// AppendActivateText는 text를 스크립트 끝에 그대로 덧붙인다.
// 파일이 없으면 만들지 않고 ErrActivationFileMissing을 반환한다.
func (p *Patcher) AppendActivateText(text string) error {
	unlock, err := p.lock()
	if err != nil {
		return fmt.Errorf("activation.AppendActivateText: %w", err)
	}
	defer unlock()

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("activation.AppendActivateText: %w", p.mapErr(err))
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("activation.AppendActivateText: %w", err)
	}
	p.log.Debug().Str("file", p.path).Int("bytes", len(text)).Msg("activate text appended")
	return nil
}

// AppendDeactivateText는 text를 deactivate 함수 본문 첫 줄로 삽입한다.
// 각 줄은 앞쪽 공백을 제거한 뒤 4칸 들여쓴다.
func (p *Patcher) AppendDeactivateText(text string) error {
	unlock, err := p.lock()
	if err != nil {
		return fmt.Errorf("activation.AppendDeactivateText: %w", err)
	}
	defer unlock()

	info, err := os.Stat(p.path)
	if err != nil {
		return fmt.Errorf("activation.AppendDeactivateText: %w", p.mapErr(err))
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("activation.AppendDeactivateText: %w", p.mapErr(err))
	}
	contents := string(data)

	marker := p.profile.DeactivateMarker
	count := strings.Count(contents, marker)
	if count == 0 {
		return fmt.Errorf("activation.AppendDeactivateText: %w: %q in %s", ErrMarkerNotFound, marker, p.path)
	}

	n := 1
	if p.mode == InsertAll {
		n = -1
	}
	updated := strings.Replace(contents, marker, marker+"\n"+Indent(text)+"\n", n)

	if err := writeAtomic(p.path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("activation.AppendDeactivateText: %w", err)
	}
	if count > 1 {
		p.log.Warn().Str("file", p.path).Int("markers", count).Bool("all", p.mode == InsertAll).
			Msg("deactivate marker appears more than once")
	}
	p.log.Debug().Str("file", p.path).Msg("deactivate text inserted")
	return nil
}

// Indent는 각 줄의 앞쪽 공백을 제거하고 정확히 4칸 들여쓴 결과를 반환한다.
// 마지막 줄바꿈 하나는 줄 구분자로 취급한다.
func Indent(text string) string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = indent + strings.TrimLeft(line, " ")
	}
	return strings.Join(lines, "\n")
}

// lock은 활성화 스크립트 옆의 잠금 파일을 잡는다.
func (p *Patcher) lock() (func(), error) {
	if _, err := os.Stat(p.path); err != nil {
		return nil, p.mapErr(err)
	}
	dir, base := filepath.Split(p.path)
	fl := flock.New(filepath.Join(dir, "."+base+".lock"))
	if err := fl.Lock(); err != nil {
		return nil, err
	}
	return func() { _ = fl.Unlock() }, nil // 해제 실패는 프로세스 종료 시 정리됨
}

func (p *Patcher) mapErr(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrActivationFileMissing, p.path)
	}
	return err
}

// writeAtomic은 같은 디렉토리의 임시 파일에 쓴 뒤 rename으로 교체한다.
func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 성공 시에는 이미 없음

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
