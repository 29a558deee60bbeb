package crmsync

import "github.com/kreditline/leadbridge/internal/intake"

// DealTitle derives the deal title template from the lead source.
func DealTitle(leadSource, name string) string {
	switch leadSource {
	case intake.SourceCalculatorModal, intake.SourceCalculator:
		return "Заявка из калькулятора: " + name
	case intake.SourceCallbackForm:
		return "Обратный звонок: " + name
	default:
		return "Заявка с сайта: " + name
	}
}
