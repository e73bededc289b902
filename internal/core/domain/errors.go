package domain

import "errors"

// Resolver / lookup errors.
var ErrIdentityNotFound = errors.New("identity not found")
var ErrProfileNotFound = errors.New("agent profile not found")

// Approval workflow errors.
var ErrInvalidStateTransition = errors.New("invalid state transition")
var ErrRequestNotFound = errors.New("upgrade request not found")

// Listing-creation denial reasons. These are expected outcomes, not faults.
var ErrAccountNotApproved = errors.New("account not approved")
var ErrQuotaExceeded = errors.New("listing quota exceeded")

// Auth errors.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")

// CRUD errors.
var ErrListingNotFound = errors.New("listing not found")
var ErrPlanNotFound = errors.New("plan not found")
var ErrForbidden = errors.New("access forbidden")
