package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Interactive prompts. They are variables so tests can answer them.
var (
	promptBuffer  = huhBuffer
	promptConfirm = huhConfirm
)

// errAborted is returned by prompts when the user backs out.
var errAborted = huh.ErrUserAborted

// huhBuffer opens a multi-line editor seeded with buffer. A non-empty
// errMsg is shown above the text area.
func huhBuffer(title, buffer, errMsg string) (string, error) {
	text := huh.NewText().
		Title(title).
		Description(errMsg).
		Placeholder(`{"key": "value"}`).
		Lines(15).
		Value(&buffer)

	if err := huh.NewForm(huh.NewGroup(text)).Run(); err != nil {
		return "", err
	}
	return buffer, nil
}

func huhConfirm(prompt string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("OK").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
