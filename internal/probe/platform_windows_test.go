//go:build windows

package probe

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/go-ole/go-ole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func TestHideWindow(t *testing.T) {
	cmd := exec.Command("wmic")
	hideWindow(cmd)

	require.NotNil(t, cmd.SysProcAttr)
	assert.True(t, cmd.SysProcAttr.HideWindow)
	assert.Equal(t, uint32(windows.CREATE_NO_WINDOW), cmd.SysProcAttr.CreationFlags)
}

func TestComInitialized(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ok", nil, true},
		{"already initialized", ole.NewError(sFalse), true},
		{"changed mode", ole.NewError(0x80010106), false},
		{"other error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, comInitialized(tt.err))
		})
	}
}

func TestAcquireIsBalanced(t *testing.T) {
	w := platformWMI(quietLogger()).(*wmiSource)

	// A second Acquire on the same thread sees S_FALSE and must still release.
	outer := w.Acquire()
	inner := w.Acquire()
	inner()
	outer()
}

func TestReadEdition(t *testing.T) {
	require.NotNil(t, platformEdition())

	edition, err := readEdition()
	require.NoError(t, err)
	assert.NotEmpty(t, edition)
}
