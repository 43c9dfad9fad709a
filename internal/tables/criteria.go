package tables

// Criterion texts as printed in the annex tables. They are matched verbatim.
const (
	TextUnconventionalVentilation = "Nekonvenčná UPV (vysokofrekvenčná, NO ventilácia)"
	TextControlledHypothermia     = "Riadená hypotermia"
	TextPalliativeCare            = "Paliatívna starostlivosť u novorodencov"
	TextExchangeTransfusion       = "Potreba výmennej transfúzie"
	TextAcuteDelivery             = "Akútny pôrod novorodenca v prípade ohrozenia života bez ohľadu na gestačný vek a hmotnosť"
	TextTransportImpossible       = "Marker - nemožnosť transportu novorodenca z medicínskych príčin na vyššie pracovisko"
	TextNoninvasiveUnder96h       = "Výkon 8p1007 s dobou UPV nižšiou ako 96 hodín"
	TextBelowViability            = "Novorodenec pod hranicou viability (< 24 týždeň alebo < 500 g)"
	TextSignificantOP             = "So signifikantným OP výkonom"
	TextNoOPLongVentilation       = "Bez signifikantného OP výkonu, s UPV > 95 hodín, s viacerými ťažkými problémami"
	TextNoOPNoLongVentilation     = "Bez signifikantného OP výkonu a bez UPV > 95 hodín a viacerých ťažkých problémov"

	TextTrauma        = "diagnózy Kraniocerebrálna trauma"
	TextNoTrauma      = "bez diagnózy Kraniocerebrálna trauma"
	TextNotPolytrauma = "marker Pacient nespĺňa medicínske kritériá polytraumy"
)

// NewbornCriterion is the supplementary criterion of a p5_NOV row.
type NewbornCriterion int

const (
	NewbornNone NewbornCriterion = iota
	NewbornUnconventionalVentilation
	NewbornControlledHypothermia
	NewbornPalliativeCare
	NewbornExchangeTransfusion
	NewbornAcuteDelivery
	NewbornTransportImpossible
	NewbornNoninvasiveUnder96h
	NewbornBelowViability
	NewbornSignificantOP
	NewbornNoOPLongVentilation
	NewbornNoOPNoLongVentilation
	// NewbornUnknown marks criterion text the evaluator does not recognise.
	// Such rows never match.
	NewbornUnknown
)

var newbornCriteria = map[string]NewbornCriterion{
	"":                            NewbornNone,
	TextUnconventionalVentilation: NewbornUnconventionalVentilation,
	TextControlledHypothermia:     NewbornControlledHypothermia,
	TextPalliativeCare:            NewbornPalliativeCare,
	TextExchangeTransfusion:       NewbornExchangeTransfusion,
	TextAcuteDelivery:             NewbornAcuteDelivery,
	TextTransportImpossible:       NewbornTransportImpossible,
	TextNoninvasiveUnder96h:       NewbornNoninvasiveUnder96h,
	TextBelowViability:            NewbornBelowViability,
	TextSignificantOP:             NewbornSignificantOP,
	TextNoOPLongVentilation:       NewbornNoOPLongVentilation,
	TextNoOPNoLongVentilation:     NewbornNoOPNoLongVentilation,
}

// ParseNewbornCriterion maps criterion text to its NewbornCriterion.
func ParseNewbornCriterion(text string) NewbornCriterion {
	if c, ok := newbornCriteria[text]; ok {
		return c
	}
	return NewbornUnknown
}

// TraumaCriterion is the supplementary criterion of a p6_DRGD row.
type TraumaCriterion int

const (
	TraumaUnknown TraumaCriterion = iota
	TraumaCraniocerebral
	TraumaNoCraniocerebral
	TraumaNotPolytrauma
)

// ParseTraumaCriterion maps criterion text to its TraumaCriterion. Unlike
// p5, an empty criterion does not match anything.
func ParseTraumaCriterion(text string) TraumaCriterion {
	switch text {
	case TextTrauma:
		return TraumaCraniocerebral
	case TextNoTrauma:
		return TraumaNoCraniocerebral
	case TextNotPolytrauma:
		return TraumaNotPolytrauma
	}
	return TraumaUnknown
}
