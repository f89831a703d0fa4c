//go:build !windows

package probe

import (
	"os/exec"

	"github.com/sirupsen/logrus"
)

func hideWindow(*exec.Cmd) {}

func platformEdition() func() (string, error) {
	return nil
}

func platformWMI(logrus.FieldLogger) WMISource {
	return nil
}
