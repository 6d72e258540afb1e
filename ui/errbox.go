package ui

import (
	"strings"

	"github.com/muesli/reflow/truncate"
)

// ErrBox is the one line error banner under the prompt. Each message gets an
// id so a delayed clear only removes the message it was scheduled for.
type ErrBox struct {
	width   int
	message string
	id      uint64
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetSize(width int) {
	e.width = width
}

// SetError shows err and returns the id of the new message.
func (e *ErrBox) SetError(err error) uint64 {
	return e.SetMessage(err.Error())
}

// SetMessage shows msg and returns the id of the new message.
func (e *ErrBox) SetMessage(msg string) uint64 {
	e.id++
	e.message = strings.Join(strings.Fields(msg), " ")
	return e.id
}

func (e *ErrBox) Clear() {
	e.message = ""
}

// ClearIf clears the banner when it still shows message id.
func (e *ErrBox) ClearIf(id uint64) {
	if e.id == id {
		e.Clear()
	}
}

func (e *ErrBox) Message() string {
	return e.message
}

// String renders the banner, or nothing when there is no message.
func (e *ErrBox) String() string {
	if e.message == "" {
		return ""
	}
	text := IconError + " " + e.message
	if e.width > 0 {
		text = truncate.StringWithTail(text, uint(e.width), "...")
	}
	return TextStyles.Error.Render(text)
}
