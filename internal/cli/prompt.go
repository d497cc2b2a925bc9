package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Prompter는 사용자 확인 프롬프트를 추상화하는 interface다.
// 테스트에서는 mock 구현으로 교체한다.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// HuhPrompter는 charmbracelet/huh 기반의 Prompter 구현이다.
type HuhPrompter struct{}

var _ Prompter = HuhPrompter{}

// Confirm은 확인 프롬프트를 표시한다.
func (HuhPrompter) Confirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("예").
			Negative("아니오").
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("cli.Confirm: %w", err)
	}
	return confirm, nil
}
