package model

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits stored for money columns,
// which are decimal(15,2).
const AmountScale = 2

// MaxAmount is the largest value a decimal(15,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999999.99")
