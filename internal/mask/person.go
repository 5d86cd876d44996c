package mask

import (
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// Person returns a redacted copy of a person record. Nested structs are
// copied, so the caller's record is left intact.
func Person(p models.Person) models.Person {
	masked := p
	masked.Email = Email(p.Email)
	masked.Phone = Digits(p.Phone)
	masked.SSN = Digits(p.SSN)

	if p.Name != nil {
		name := *p.Name
		name.First = NamePart(name.First)
		name.Last = NamePart(name.Last)
		masked.Name = &name
	}
	if p.Address != nil {
		addr := *p.Address
		addr.Line1 = AddressLine(addr.Line1)
		masked.Address = &addr
	}

	return masked
}
