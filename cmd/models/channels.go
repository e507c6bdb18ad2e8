package models

// Channel types offered in the storefront.
const (
	ChannelGold      = "gold"
	ChannelForex     = "forex"
	ChannelAnalysis  = "analysis"
	ChannelEducation = "education"
)

// Subscription durations. DurationProgram labels single-price programs.
const (
	DurationMonthly     = "monthly"
	DurationThreeMonths = "three_months"
	DurationAnnual      = "annual"
	DurationProgram     = "program"
)

var channelTypes = map[string]bool{
	ChannelGold:      true,
	ChannelForex:     true,
	ChannelAnalysis:  true,
	ChannelEducation: true,
}

var durations = map[string]bool{
	DurationMonthly:     true,
	DurationThreeMonths: true,
	DurationAnnual:      true,
	DurationProgram:     true,
}

func IsChannelType(v string) bool {
	return channelTypes[v]
}

func IsDuration(v string) bool {
	return durations[v]
}
