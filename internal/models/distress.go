package models

// DistressLabel - метка, которую выставляет анализ голоса
type DistressLabel string

const (
	DistressLabelNormal   DistressLabel = "normal"
	DistressLabelDistress DistressLabel = "distress"
)

// DistressReading - результат анализа голоса для одного фрагмента записи
type DistressReading struct {
	Probability float64       `json:"distress_prob"`
	Label       DistressLabel `json:"distress_label"`
	Coords      *PositionFix  `json:"coords,omitempty"`
}

// DistressAction - что мост сделал с показанием
type DistressAction string

const (
	DistressActionNone     DistressAction = "none"
	DistressActionAdvisory DistressAction = "advisory"
	DistressActionSOS      DistressAction = "sos"
)
