package domain

// EncomendaForm is the typed request object bound from form-encoded input on
// the create and update endpoints. Validation runs before any store access.
type EncomendaForm struct {
	Name              string `form:"name" validate:"required"`
	House             string `form:"house"`
	PostalCode        string `form:"postalCode" validate:"required"`
	Address           string `form:"address"`
	SmallPackageCount int    `form:"smallPackageCount" validate:"gte=0"`
	PackageLabel      string `form:"packageLabel"`
}

// Encomenda builds a record from the form.
func (f *EncomendaForm) Encomenda() *Encomenda {
	return &Encomenda{
		Name:              f.Name,
		House:             f.House,
		PostalCode:        f.PostalCode,
		Address:           f.Address,
		SmallPackageCount: f.SmallPackageCount,
		PackageLabel:      f.PackageLabel,
	}
}

// Fields extracts the mutable fields of the form, for updates.
func (f *EncomendaForm) Fields() EncomendaFields {
	return EncomendaFields{
		House:             f.House,
		PostalCode:        f.PostalCode,
		Address:           f.Address,
		SmallPackageCount: f.SmallPackageCount,
		PackageLabel:      f.PackageLabel,
	}
}
