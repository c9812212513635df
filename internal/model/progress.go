package model

// Progress is a single progress sample of a transfer
type Progress struct {
	Fraction float64 // 0.0 to 1.0
	Received int64   // bytes received so far
	Total    int64   // total bytes, 0 if unknown
}
