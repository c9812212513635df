package model

// Package model defines the domain data structures shared across the app: the
// download lifecycle state, download requests, progress samples, failures and the
// persisted user preferences. Values are small and copied freely between goroutines.
