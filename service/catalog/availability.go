package catalog

// UnlimitedStock is the sentinel stored in the stock column for simple
// products that are purchasable: the schema wants a count, the business
// rule is a flag. Every conversion goes through Availability so no other
// code hardcodes the constant.
const UnlimitedStock int64 = 999999

// Availability is the purchasability of a simple product: either
// unlimited ("in stock", no real count) or a counted quantity.
type Availability struct {
	unlimited bool
	count     int64
}

// Unlimited returns the in-stock-without-a-count availability.
func Unlimited() Availability {
	return Availability{unlimited: true}
}

// Counted returns a counted availability. Negative counts clamp to zero.
func Counted(n int64) Availability {
	if n < 0 {
		n = 0
	}
	return Availability{count: n}
}

// FromFlag maps the boolean "is this purchasable" form: true is
// unlimited, false is counted zero.
func FromFlag(inStock bool) Availability {
	if inStock {
		return Unlimited()
	}
	return Counted(0)
}

// FromStock inverts StockValue: any stored value at or above the
// sentinel reads back as unlimited.
func FromStock(stock int64) Availability {
	if stock >= UnlimitedStock {
		return Unlimited()
	}
	return Counted(stock)
}

// StockValue is the normalized integer stored in the stock column, used
// by numeric queries and sorts ("active" means stock > 0).
func (a Availability) StockValue() int64 {
	if a.unlimited {
		return UnlimitedStock
	}
	return a.count
}

// Purchasable reports whether the product can be bought.
func (a Availability) Purchasable() bool {
	return a.unlimited || a.count > 0
}
