package probe

import (
	"github.com/monify-labs/hostreport/internal/locale"
)

// wmiErrorLimit caps how much of a WMI error message is shown.
const wmiErrorLimit = 50

// VideoController mirrors the Win32_VideoController properties we read.
type VideoController struct {
	Name          string
	DriverVersion string
}

// SoundDevice mirrors the Win32_SoundDevice properties we read.
type SoundDevice struct {
	Name string
}

// NetworkAdapter mirrors the Win32_NetworkAdapterConfiguration properties
// we read for IP-enabled adapters.
type NetworkAdapter struct {
	Description string
	IPAddress   []string
}

// WMISource queries Windows management instrumentation.
type WMISource interface {
	// Acquire prepares the calling goroutine for COM and returns the
	// matching release. It never fails: an initialization error is
	// logged and the returned release is a no-op.
	Acquire() (release func())

	// Available checks that the management service answers at all. It is
	// called inside the Acquire scope.
	Available() error

	VideoControllers() ([]VideoController, error)
	SoundDevices() ([]SoundDevice, error)
	NetworkAdapters() ([]NetworkAdapter, error)
}

// wmiDevices runs the three device queries inside one COM scope. Each
// query fails on its own: an error becomes a line under its header and
// the other groups are kept. It reports false when the service does not
// answer the connection check, in which case no query is made.
func (p *Prober) wmiDevices(t locale.Table) ([]deviceGroup, bool) {
	release := p.src.WMI.Acquire()
	defer release()

	if err := p.src.WMI.Available(); err != nil {
		p.log.WithError(err).WithField("probe", "devices").Debug("WMI connection check failed")
		return nil, false
	}

	graphics := deviceGroup{title: locale.KeyGraphics}
	if controllers, err := p.src.WMI.VideoControllers(); err != nil {
		graphics.lines = append(graphics.lines, p.wmiErrorLine(t, "Win32_VideoController", err))
	} else {
		for _, controller := range controllers {
			graphics.lines = append(graphics.lines, deviceIndent+"├─ "+controller.Name)
			if controller.DriverVersion != "" {
				graphics.lines = append(graphics.lines, deviceIndent+"│  "+field(t, locale.KeyDriver, controller.DriverVersion))
			}
		}
	}

	audio := deviceGroup{title: locale.KeyAudio}
	if devices, err := p.src.WMI.SoundDevices(); err != nil {
		audio.lines = append(audio.lines, p.wmiErrorLine(t, "Win32_SoundDevice", err))
	} else {
		for _, device := range devices {
			if device.Name != "" {
				audio.lines = append(audio.lines, deviceIndent+"├─ "+device.Name)
			}
		}
	}

	network := deviceGroup{title: locale.KeyNetwork}
	if adapters, err := p.src.WMI.NetworkAdapters(); err != nil {
		network.lines = append(network.lines, p.wmiErrorLine(t, "Win32_NetworkAdapterConfiguration", err))
	} else {
		for _, adapter := range adapters {
			if len(adapter.IPAddress) == 0 {
				continue
			}
			network.lines = append(network.lines,
				deviceIndent+"├─ "+adapter.Description,
				deviceIndent+"│  "+field(t, locale.KeyIP, adapter.IPAddress[0]),
			)
		}
	}

	return []deviceGroup{graphics, audio, network}, true
}

func (p *Prober) wmiErrorLine(t locale.Table, class string, err error) string {
	p.log.WithError(err).WithField("probe", "devices").WithField("query", class).Debug("WMI query failed")

	msg := []rune(err.Error())
	if len(msg) > wmiErrorLimit {
		msg = msg[:wmiErrorLimit]
	}
	return deviceIndent + t.T(locale.KeyWMIError, string(msg))
}
