package ports

// Surface abstracts the document root element that preferences are mirrored
// onto: data attributes for CSS selectors and custom properties for CSS
// variables.
type Surface interface {
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	Property(name string) (string, bool)
	SetProperty(name, value string)
}
