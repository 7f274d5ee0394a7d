package manifestcmd

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const generateManifestType = "notes.manifest.generate"

// GenerateManifestCommand writes the directory manifest to Output.
type GenerateManifestCommand struct {
	Output string `json:"output"`
}

// Type implements command.Message.
func (GenerateManifestCommand) Type() string { return generateManifestType }

// Validate implements command.Message. Output is checked with surrounding
// whitespace removed, matching what the handler writes to.
func (m GenerateManifestCommand) Validate() error {
	m.Output = strings.TrimSpace(m.Output)
	return validation.ValidateStruct(&m,
		validation.Field(&m.Output,
			validation.Required,
			validation.By(jsonFile),
		),
	)
}

func jsonFile(value any) error {
	path, _ := value.(string)
	if path == "" {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return validation.NewError("validation_manifest_output_ext", "must be a .json file")
	}
	return nil
}
