package auth

import "complainthub/backend/internal/models"

// Identity is the authenticated caller: the base account plus whichever role
// profiles are linked to it. Nil profile pointers mean the role is absent.
type Identity struct {
	Account  *models.Account
	Consumer *models.ConsumerProfile
	Company  *models.CompanyProfile
	Admin    *models.AdministratorProfile
}

func (id *Identity) IsConsumer() bool {
	return id != nil && id.Consumer != nil
}

func (id *Identity) IsCompany() bool {
	return id != nil && id.Company != nil
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Admin != nil
}
