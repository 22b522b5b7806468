package model

// Option is one allowed value of an enumerated field and its form label.
type Option struct {
	Value string
	Label string
}

var (
	GenderOptions = []Option{
		{Value: "Male", Label: "Masculino"},
		{Value: "Female", Label: "Femenino"},
	}
	SmokingOptions = []Option{
		{Value: "Never", Label: "Nunca fumé"},
		{Value: "Former", Label: "Ex-fumador"},
		{Value: "Current", Label: "Fumador actual"},
	}
	AlcoholOptions = []Option{
		{Value: "None", Label: "No consumo"},
		{Value: "Light", Label: "Ligero"},
		{Value: "Moderate", Label: "Moderado"},
		{Value: "Heavy", Label: "Alto"},
	}
	YesNoOptions = []Option{
		{Value: "No", Label: "No"},
		{Value: "Yes", Label: "Sí"},
	}
)

// HasOption reports whether value is one of opts.
func HasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
