// Package assets provides the CSS styles and HTML templates used to render
// resumes.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a user directory can override a single style or template.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # e.g. compact.css
//	└── templates/
//	    └── {name}.html      # e.g. resume.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// DocumentStyleName styles plain markdown documents, as opposed to the
// two-column resume layout.
const DocumentStyleName = "document"

// DefaultTemplateName is the name of the built-in resume template.
const DefaultTemplateName = "resume"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
