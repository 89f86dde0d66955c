package listings

import (
	"rajendranagar-portal/internal/models"
	"rajendranagar-portal/internal/tiers"
)

// CheckQuota decides whether the given phone number may create one more
// active listing. The effective limit comes from the stored user_limits
// override when one exists, otherwise the Free tier default of 1.
//
// This check and the subsequent insert are deliberately not atomic: two
// submissions from the same number racing through the same instant can
// exceed the quota by one. Accepted for this system's traffic and stakes.
func (s *Service) CheckQuota(phoneRaw string) error {
	mobile := models.NormalizePhone(phoneRaw)
	if len(mobile) < 10 {
		return &ValidationError{Field: "contact.phone", Message: "Valid 10-digit mobile number required."}
	}

	limit, err := s.store.UserLimitByMobile(mobile)
	if err != nil {
		return &PersistenceError{Op: "looking up user limit", Err: err}
	}

	activeAds, err := s.store.CountActiveByOwner(mobile, s.cutoff())
	if err != nil {
		return &PersistenceError{Op: "counting active listings", Err: err}
	}

	tierName := tiers.FreeTierName
	maxPosts := tiers.FreeTierLimit
	if limit != nil {
		tierName = limit.TierName
		maxPosts = limit.MaxPosts
	}

	if activeAds >= int64(maxPosts) {
		return &QuotaExceededError{
			TierName: tierName,
			Limit:    maxPosts,
			Current:  activeAds,
		}
	}

	return nil
}

// UserLimit returns the stored quota override for a phone number, or nil.
func (s *Service) UserLimit(phoneRaw string) (*models.UserLimit, error) {
	mobile := models.NormalizePhone(phoneRaw)
	limit, err := s.store.UserLimitByMobile(mobile)
	if err != nil {
		return nil, &PersistenceError{Op: "looking up user limit", Err: err}
	}
	return limit, nil
}

// AssignTier upserts a quota override. The tier name is a label only; the
// limit stored here is what gets enforced, whether or not it matches the
// fixed tier table.
func (s *Service) AssignTier(phoneRaw, tierName string, maxPosts int) error {
	mobile := models.NormalizePhone(phoneRaw)
	if len(mobile) < 10 {
		return &ValidationError{Field: "mobile", Message: "Valid 10-digit mobile number required."}
	}
	if maxPosts <= 0 {
		return &ValidationError{Field: "max_posts", Message: "Post limit must be a positive number."}
	}

	if err := s.store.UpsertUserLimit(mobile, tierName, maxPosts); err != nil {
		return &PersistenceError{Op: "saving user limit", Err: err}
	}
	return nil
}
