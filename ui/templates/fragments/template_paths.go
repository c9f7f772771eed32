// Package fragments provides template path constants for the dashboard views
package fragments

// Template names, relative to ui/templates
const (
	IndexPage = "index.html"
	ErrorPage = "error.html"

	Dashboard    = "fragments/dashboard.html"
	ImageSection = "fragments/image_section.html"
	TableSection = "fragments/table_section.html"
)

// GetAllTemplatePaths returns all template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		IndexPage,
		ErrorPage,
		Dashboard,
		ImageSection,
		TableSection,
	}
}
