package models

// RankedGroup is one row of a top-N breakdown (by category or brand).
type RankedGroup struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// ProductStats summarises the catalog for the admin dashboard.
type ProductStats struct {
	TotalProducts   int           `json:"totalProducts"`
	ActiveProducts  int           `json:"activeProducts"`
	OutOfStock      int           `json:"outOfStock"`
	LowStock        int           `json:"lowStock"`
	TotalCategories int           `json:"totalCategories"`
	TotalBrands     int           `json:"totalBrands"`
	AverageRating   float64       `json:"averageRating"`
	TotalReviews    int           `json:"totalReviews"`
	MonthlySales    int           `json:"monthlySales"`
	MonthlyRevenue  float64       `json:"monthlyRevenue"`
	TopCategories   []RankedGroup `json:"topCategories"`
	TopBrands       []RankedGroup `json:"topBrands"`
}
