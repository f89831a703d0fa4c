package locale

import "fmt"

// Key identifies a localized message.
type Key string

const (
	KeyTitle      Key = "title"
	KeyAnalyzing  Key = "analyzing"
	KeyRefreshing Key = "refreshing"
	KeyBusy       Key = "refresh_busy"

	// Section titles, in display order.
	KeyOS      Key = "os"
	KeyCPU     Key = "cpu"
	KeyMemory  Key = "memory"
	KeyDisks   Key = "disks"
	KeyDevices Key = "devices"
	KeyLicense Key = "license"

	KeyOSLabel      Key = "os_label"
	KeyEdition      Key = "edition"
	KeyVersion      Key = "version"
	KeyArchitecture Key = "architecture"
	KeyComputerName Key = "computer_name"

	KeyProcessor            Key = "processor"
	KeyPhysicalCores        Key = "physical_cores"
	KeyLogicalCores         Key = "logical_cores"
	KeyUsage                Key = "usage"
	KeyMaxFrequency         Key = "max_frequency"
	KeyCurrentFrequency     Key = "current_frequency"
	KeyFrequencyUnavailable Key = "frequency_unavailable"
	KeyNotAvailable         Key = "not_available"

	KeyTotal     Key = "total"
	KeyAvailable Key = "available"
	KeyInUse     Key = "in_use"

	KeyDrive           Key = "drive"
	KeySpace           Key = "space"
	KeyInfoUnavailable Key = "info_unavailable"

	KeyGraphics           Key = "graphics"
	KeyAudio              Key = "audio"
	KeyNetwork            Key = "network"
	KeyDriver             Key = "driver"
	KeyIP                 Key = "ip"
	KeyWMIError           Key = "wmi_error"
	KeyWMINotInstalled    Key = "wmi_not_installed"
	KeyDriversUnavailable Key = "drivers_unavailable"

	KeyLicenseKey           Key = "license_key"
	KeyLicenseStatus        Key = "license_status"
	KeyLicensed             Key = "licensed"
	KeyUnlicensed           Key = "unlicensed"
	KeyLicenseUnknown       Key = "license_unknown"
	KeyLicenseError         Key = "license_error"
	KeyLicenseNotApplicable Key = "license_not_applicable"

	KeyFatalError Key = "fatal_error"
)

// Table is the message set for one language. Lookups missing from the
// language's own messages fall back to the Default table.
type Table struct {
	Lang     string
	messages map[Key]string
}

// For returns the table for lang. Languages without messages of their own
// get a table that resolves every key through Default.
func For(lang string) Table {
	return Table{Lang: lang, messages: tables[lang]}
}

// T looks up key and, when args are given, formats them into the template.
func (t Table) T(key Key, args ...any) string {
	msg, ok := t.messages[key]
	if !ok {
		msg = tables[Default][key]
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Lookup returns the message for key in lang with Default fallback.
func Lookup(lang string, key Key) string {
	return For(lang).T(key)
}

var tables = map[string]map[Key]string{
	"en": {
		KeyTitle:      "Host Report",
		KeyAnalyzing:  "System analysis in progress...",
		KeyRefreshing: "Refreshing...",
		KeyBusy:       "Refresh already in progress",

		KeyOS:      "OPERATING SYSTEM",
		KeyCPU:     "PROCESSOR",
		KeyMemory:  "RAM MEMORY",
		KeyDisks:   "STORAGE",
		KeyDevices: "DEVICES AND DRIVERS",
		KeyLicense: "WINDOWS LICENSE",

		KeyOSLabel:      "System",
		KeyEdition:      "Edition",
		KeyVersion:      "Version",
		KeyArchitecture: "Architecture",
		KeyComputerName: "Computer Name",

		KeyProcessor:            "Processor",
		KeyPhysicalCores:        "Physical Cores",
		KeyLogicalCores:         "Logical Threads",
		KeyUsage:                "Usage",
		KeyMaxFrequency:         "Max Frequency",
		KeyCurrentFrequency:     "current",
		KeyFrequencyUnavailable: "Frequency: Not available",
		KeyNotAvailable:         "Not available",

		KeyTotal:     "Total",
		KeyAvailable: "Available",
		KeyInUse:     "In Use",

		KeyDrive:           "Drive",
		KeySpace:           "Space",
		KeyInfoUnavailable: "Information not available",

		KeyGraphics:           "Graphics Cards",
		KeyAudio:              "Audio Devices",
		KeyNetwork:            "Network Adapters",
		KeyDriver:             "Driver",
		KeyIP:                 "IP",
		KeyWMIError:           "WMI Error: %s",
		KeyWMINotInstalled:    "  WMI not available",
		KeyDriversUnavailable: "  Device information not available",

		KeyLicenseKey:           "Product Key",
		KeyLicenseStatus:        "License Status",
		KeyLicensed:             "Licensed ✓",
		KeyUnlicensed:           "Unlicensed ✗",
		KeyLicenseUnknown:       "Unknown",
		KeyLicenseError:         "Unable to retrieve license",
		KeyLicenseNotApplicable: "License not applicable on this system",

		KeyFatalError: "CRITICAL ERROR",
	},
	"it": {
		KeyTitle:      "Rapporto Host",
		KeyAnalyzing:  "Analisi del sistema in corso...",
		KeyRefreshing: "Aggiornamento...",
		KeyBusy:       "Aggiornamento già in corso",

		KeyOS:      "SISTEMA OPERATIVO",
		KeyCPU:     "PROCESSORE",
		KeyMemory:  "MEMORIA RAM",
		KeyDisks:   "ARCHIVIAZIONE",
		KeyDevices: "PERIFERICHE E DRIVER",
		KeyLicense: "LICENZA WINDOWS",

		KeyOSLabel:      "Sistema",
		KeyEdition:      "Edizione",
		KeyVersion:      "Versione",
		KeyArchitecture: "Architettura",
		KeyComputerName: "Nome Computer",

		KeyProcessor:            "Processore",
		KeyPhysicalCores:        "Core Fisici",
		KeyLogicalCores:         "Thread Logici",
		KeyUsage:                "Utilizzo",
		KeyMaxFrequency:         "Frequenza Max",
		KeyCurrentFrequency:     "attuale",
		KeyFrequencyUnavailable: "Frequenza: Non disponibile",
		KeyNotAvailable:         "Non disponibile",

		KeyTotal:     "Totale",
		KeyAvailable: "Disponibile",
		KeyInUse:     "In Uso",

		KeyDrive:           "Unità",
		KeySpace:           "Spazio",
		KeyInfoUnavailable: "Informazioni non disponibili",

		KeyGraphics:           "Schede Grafiche",
		KeyAudio:              "Dispositivi Audio",
		KeyNetwork:            "Schede di Rete",
		KeyDriver:             "Driver",
		KeyIP:                 "IP",
		KeyWMIError:           "Errore WMI: %s",
		KeyWMINotInstalled:    "  WMI non disponibile",
		KeyDriversUnavailable: "  Informazioni sulle periferiche non disponibili",

		KeyLicenseKey:           "Chiave Prodotto",
		KeyLicenseStatus:        "Stato Licenza",
		KeyLicensed:             "Con licenza ✓",
		KeyUnlicensed:           "Senza licenza ✗",
		KeyLicenseUnknown:       "Sconosciuto",
		KeyLicenseError:         "Impossibile recuperare la licenza",
		KeyLicenseNotApplicable: "Licenza non applicabile su questo sistema",

		KeyFatalError: "ERRORE CRITICO",
	},
	// es, fr and de cover titles and the common labels; the rest comes from en.
	"es": {
		KeyOS:              "SISTEMA OPERATIVO",
		KeyCPU:             "PROCESADOR",
		KeyMemory:          "MEMORIA RAM",
		KeyDisks:           "ALMACENAMIENTO",
		KeyDevices:         "DISPOSITIVOS Y CONTROLADORES",
		KeyLicense:         "LICENCIA DE WINDOWS",
		KeyOSLabel:         "Sistema",
		KeyVersion:         "Versión",
		KeyArchitecture:    "Arquitectura",
		KeyComputerName:    "Nombre del equipo",
		KeyProcessor:       "Procesador",
		KeyTotal:           "Total",
		KeyAvailable:       "Disponible",
		KeyInUse:           "En uso",
		KeyDrive:           "Unidad",
		KeySpace:           "Espacio",
		KeyInfoUnavailable: "Información no disponible",
		KeyFatalError:      "ERROR CRÍTICO",
	},
	"fr": {
		KeyOS:              "SYSTÈME D'EXPLOITATION",
		KeyCPU:             "PROCESSEUR",
		KeyMemory:          "MÉMOIRE RAM",
		KeyDisks:           "STOCKAGE",
		KeyDevices:         "PÉRIPHÉRIQUES ET PILOTES",
		KeyLicense:         "LICENCE WINDOWS",
		KeyOSLabel:         "Système",
		KeyVersion:         "Version",
		KeyArchitecture:    "Architecture",
		KeyComputerName:    "Nom de l'ordinateur",
		KeyProcessor:       "Processeur",
		KeyTotal:           "Total",
		KeyAvailable:       "Disponible",
		KeyInUse:           "Utilisée",
		KeyDrive:           "Lecteur",
		KeySpace:           "Espace",
		KeyInfoUnavailable: "Informations non disponibles",
		KeyFatalError:      "ERREUR CRITIQUE",
	},
	"de": {
		KeyOS:              "BETRIEBSSYSTEM",
		KeyCPU:             "PROZESSOR",
		KeyMemory:          "ARBEITSSPEICHER",
		KeyDisks:           "SPEICHER",
		KeyDevices:         "GERÄTE UND TREIBER",
		KeyLicense:         "WINDOWS-LIZENZ",
		KeyOSLabel:         "System",
		KeyVersion:         "Version",
		KeyArchitecture:    "Architektur",
		KeyComputerName:    "Computername",
		KeyProcessor:       "Prozessor",
		KeyTotal:           "Gesamt",
		KeyAvailable:       "Verfügbar",
		KeyInUse:           "Belegt",
		KeyDrive:           "Laufwerk",
		KeySpace:           "Speicherplatz",
		KeyInfoUnavailable: "Informationen nicht verfügbar",
		KeyFatalError:      "KRITISCHER FEHLER",
	},
}
