package config

const SourceFileExt = ".sbl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sbl", ".sable"}

// ConfigFileName is the per-project configuration file.
const ConfigFileName = "sable.yaml"

// Rename policy names accepted in configuration.
const (
	PolicyContextual  = "contextual"
	PolicyInline      = "inline"
	PolicyBoilerplate = "boilerplate"
)

// DefaultPrinterWidth is the target line width for printed output.
const DefaultPrinterWidth = 100
