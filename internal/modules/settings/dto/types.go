package dto

type PreferencesOutput struct {
	Enabled  bool
	Interval string
	Markers  []string
}

type SetInput struct {
	Enabled  *bool
	Interval *string
	Markers  []string
}
