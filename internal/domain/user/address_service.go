// internal/domain/user/address_service.go
package user

import "github.com/google/uuid"

// Address functions take the current profile and return the next one. With
// no profile there is nobody to attach an address to, so they return nil.

// AddAddress appends address to the profile, assigning an ID when it has none
func AddAddress(p *Profile, address Address) *Profile {
	if p == nil {
		return nil
	}
	if address.ID == "" {
		address.ID = uuid.New().String()
	}

	next := Clone(p)
	next.Addresses = append(next.Addresses, address)
	return next
}

// UpdateAddress applies the non-nil fields of req to the address with id
func UpdateAddress(p *Profile, id string, req UpdateAddressRequest) *Profile {
	if p == nil {
		return nil
	}

	next := Clone(p)
	for i := range next.Addresses {
		if next.Addresses[i].ID == id {
			applyUpdate(&next.Addresses[i], req)
		}
	}
	return next
}

// RemoveAddress drops the address with id
func RemoveAddress(p *Profile, id string) *Profile {
	if p == nil {
		return nil
	}

	next := Clone(p)
	kept := make([]Address, 0, len(next.Addresses))
	for _, address := range next.Addresses {
		if address.ID != id {
			kept = append(kept, address)
		}
	}
	next.Addresses = kept
	return next
}

// SetDefaultAddress records id as the default address. The flags on the
// addresses themselves are left alone.
func SetDefaultAddress(p *Profile, id string) *Profile {
	if p == nil {
		return nil
	}

	next := Clone(p)
	next.DefaultAddressID = id
	return next
}

// Clone deep-copies a profile
func Clone(p *Profile) *Profile {
	if p == nil {
		return nil
	}
	next := *p
	next.Addresses = make([]Address, len(p.Addresses))
	copy(next.Addresses, p.Addresses)
	return &next
}

func applyUpdate(address *Address, req UpdateAddressRequest) {
	if req.Label != nil {
		address.Label = *req.Label
	}
	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}
	if req.ZipCode != nil {
		address.ZipCode = *req.ZipCode
	}
	if req.Country != nil {
		address.Country = *req.Country
	}
	if req.IsDefault != nil {
		address.IsDefault = *req.IsDefault
	}
}
