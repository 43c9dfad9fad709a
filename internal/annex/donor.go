package annex

import "github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"

// ServiceOrganDonor is assigned by annex 16.
const ServiceOrganDonor = "S17-22"

// organDonor evaluates annex 16, identification of a deceased organ donor.
// It needs one diagnosis from each of the coma, brain swelling and selected
// brain disease groups.
func (e *Evaluator) organDonor(c *model.Case) []string {
	if len(c.Diagnoses) == 0 {
		return nil
	}
	if e.t.DonorComa.HasAny(c.Diagnoses) &&
		e.t.DonorBrainSwelling.HasAny(c.Diagnoses) &&
		e.t.DonorSelectedDiseases.HasAny(c.Diagnoses) {
		return []string{ServiceOrganDonor}
	}
	return nil
}
