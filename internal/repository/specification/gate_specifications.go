package specification

import "gorm.io/gorm"

// ByProfileID filters voice profiles by their stable external id.
type ByProfileID struct {
	ProfileID string
}

func (s ByProfileID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("profile_id = ?", s.ProfileID)
}

// ByClientSlug filters by client.
type ByClientSlug struct {
	ClientSlug string
}

func (s ByClientSlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("client_slug = ?", s.ClientSlug)
}

// ByBrandSlug filters by brand within a client.
type ByBrandSlug struct {
	BrandSlug string
}

func (s ByBrandSlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("brand_slug = ?", s.BrandSlug)
}

// ByJobID filters gate runs belonging to one pipeline job.
type ByJobID struct {
	JobID string
}

func (s ByJobID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("job_id = ?", s.JobID)
}

// ByPropertySlug filters gate runs by the property being gated.
type ByPropertySlug struct {
	PropertySlug string
}

func (s ByPropertySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_slug = ?", s.PropertySlug)
}

// ByGateStatus filters gate runs by outcome (PASS, FAIL, OVERRIDE, ERROR).
type ByGateStatus struct {
	Status string
}

func (s ByGateStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("gate_status = ?", s.Status)
}
