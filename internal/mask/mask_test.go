package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, "j******e@example.com", Email("john.doe@example.com"))
	assert.Equal(t, "**@example.com", Email("jd@example.com"))
	assert.Equal(t, "*@example.com", Email("j@example.com"))
	assert.Equal(t, "not-an-email", Email("not-an-email"))
	assert.Equal(t, "é**c@example.com", Email("éric@example.com"))
	assert.Equal(t, "", Email(""))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "+* (***) ***-4477", Digits("+1 (555) 010-4477"))
	assert.Equal(t, "***-**-6789", Digits("123-45-6789"))
	assert.Equal(t, "***", Digits("123"))
	assert.Equal(t, "", Digits(""))
}

func TestNamePart(t *testing.T) {
	assert.Equal(t, "J***", NamePart("John"))
	assert.Equal(t, "M", NamePart("M"))
	// the leading character survives whole even when multi-byte
	assert.Equal(t, "É***", NamePart("Éric"))
	assert.Equal(t, "", NamePart(""))
}

func TestAddressLine(t *testing.T) {
	assert.Equal(t, "1***", AddressLine("120 Maple Street"))
	assert.Equal(t, "Ø***", AddressLine("Østergade 12"))
	assert.Equal(t, "", AddressLine(""))
}

func TestPerson(t *testing.T) {
	original := models.Person{
		ID:    "P-1001",
		Email: "john.doe@example.com",
		Phone: "+1 (555) 010-4477",
		SSN:   "123-45-6789",
		Name:  &models.Name{First: "John", Last: "Doe"},
		Address: &models.Address{
			Line1: "120 Maple Street", City: "Springfield", State: "IL",
		},
	}

	masked := Person(original)

	assert.Equal(t, "j******e@example.com", masked.Email)
	assert.Equal(t, "+* (***) ***-4477", masked.Phone)
	assert.Equal(t, "***-**-6789", masked.SSN)
	assert.Equal(t, "J***", masked.Name.First)
	assert.Equal(t, "D**", masked.Name.Last)
	assert.Equal(t, "1***", masked.Address.Line1)
	assert.Equal(t, "Springfield", masked.Address.City)

	// the input record is never mutated
	assert.Equal(t, "john.doe@example.com", original.Email)
	assert.Equal(t, "John", original.Name.First)
	assert.Equal(t, "120 Maple Street", original.Address.Line1)
}

func TestPersonWithAbsentFields(t *testing.T) {
	masked := Person(models.Person{ID: "P-2"})

	assert.Equal(t, "P-2", masked.ID)
	assert.Empty(t, masked.Email)
	assert.Nil(t, masked.Name)
	assert.Nil(t, masked.Address)
}
