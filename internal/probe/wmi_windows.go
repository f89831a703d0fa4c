//go:build windows

package probe

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/sirupsen/logrus"
	"github.com/yusufpapurcu/wmi"
)

// sFalse is returned by CoInitializeEx when the thread already has a COM
// apartment. The call still has to be balanced by CoUninitialize.
const sFalse = 0x00000001

const (
	connectionQuery      = "SELECT Name FROM Win32_OperatingSystem"
	videoControllerQuery = "SELECT Name, DriverVersion FROM Win32_VideoController"
	soundDeviceQuery     = "SELECT Name FROM Win32_SoundDevice"
	networkAdapterQuery  = "SELECT Description, IPAddress FROM Win32_NetworkAdapterConfiguration WHERE IPEnabled = TRUE"
)

type wmiSource struct {
	log logrus.FieldLogger
}

func platformWMI(log logrus.FieldLogger) WMISource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &wmiSource{log: log}
}

// Acquire pins the goroutine to its OS thread and initializes COM there.
func (w *wmiSource) Acquire() func() {
	runtime.LockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); !comInitialized(err) {
		w.log.WithError(err).Debug("COM initialization failed, querying WMI anyway")
		return runtime.UnlockOSThread
	}

	return func() {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
	}
}

// comInitialized reports whether a CoInitializeEx result must be balanced
// by CoUninitialize.
func comInitialized(err error) bool {
	if err == nil {
		return true
	}
	var oleErr *ole.OleError
	return errors.As(err, &oleErr) && oleErr.Code() == sFalse
}

// Available runs a single-row query against the root namespace.
func (w *wmiSource) Available() error {
	var rows []struct {
		Name string
	}
	if err := wmi.Query(connectionQuery, &rows); err != nil {
		return fmt.Errorf("wmi connection: %w", err)
	}
	return nil
}

func (w *wmiSource) VideoControllers() ([]VideoController, error) {
	var rows []struct {
		Name          string
		DriverVersion string
	}
	if err := wmi.Query(videoControllerQuery, &rows); err != nil {
		return nil, err
	}

	controllers := make([]VideoController, 0, len(rows))
	for _, row := range rows {
		controllers = append(controllers, VideoController{Name: row.Name, DriverVersion: row.DriverVersion})
	}
	return controllers, nil
}

func (w *wmiSource) SoundDevices() ([]SoundDevice, error) {
	var rows []struct {
		Name string
	}
	if err := wmi.Query(soundDeviceQuery, &rows); err != nil {
		return nil, err
	}

	devices := make([]SoundDevice, 0, len(rows))
	for _, row := range rows {
		devices = append(devices, SoundDevice{Name: row.Name})
	}
	return devices, nil
}

func (w *wmiSource) NetworkAdapters() ([]NetworkAdapter, error) {
	var rows []struct {
		Description string
		IPAddress   []string
	}
	if err := wmi.Query(networkAdapterQuery, &rows); err != nil {
		return nil, err
	}

	adapters := make([]NetworkAdapter, 0, len(rows))
	for _, row := range rows {
		adapters = append(adapters, NetworkAdapter{Description: row.Description, IPAddress: row.IPAddress})
	}
	return adapters, nil
}
