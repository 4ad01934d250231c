package model

import "github.com/shopspring/decimal"

// CategoryTotal is the spend of one category, used for share charts.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthlyTotal is the spend of one calendar month, used for trend charts.
type MonthlyTotal struct {
	Total decimal.Decimal
	Year  int
	Month int
}

// TypeTotal is the sum of all records of one type.
type TypeTotal struct {
	Type  RecordType
	Total decimal.Decimal
}

// PeriodTotal is the expense total of a labeled period such as "2024-03" or "2024".
type PeriodTotal struct {
	Period string
	Total  decimal.Decimal
}
