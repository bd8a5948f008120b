package planner

// Tier ступень скидки: начиная с MinCount выбранных слотов скидка Discount в месяц
type Tier struct {
	MinCount int
	Discount int64
}

// TierTable упорядоченная по MinCount таблица скидок
type TierTable []Tier

// DefaultTiers: 2 слота = 1000, 3 = 2500, 4 и больше = 5000
var DefaultTiers = TierTable{
	{MinCount: 2, Discount: 1000},
	{MinCount: 3, Discount: 2500},
	{MinCount: 4, Discount: 5000},
}

// DiscountFor скидка для количества выбранных слотов, точный поиск по таблице
func (t TierTable) DiscountFor(count int) int64 {
	var discount int64
	for _, tier := range t {
		if count >= tier.MinCount {
			discount = tier.Discount
		}
	}
	return discount
}

// Next ближайшая ступень выше текущего количества; nil если достигнут максимум
func (t TierTable) Next(count int) *NextTier {
	for _, tier := range t {
		if tier.MinCount > count {
			return &NextTier{
				More: tier.MinCount - count,
				Save: tier.Discount,
			}
		}
	}
	return nil
}

// NextTier подсказка "добавьте ещё More, чтобы сэкономить Save"
type NextTier struct {
	More int   `json:"more"`
	Save int64 `json:"save"`
}

// Quote расчёт стоимости корзины
type Quote struct {
	Count    int       `json:"count"`
	Subtotal int64     `json:"subtotal"`
	Discount int64     `json:"discount"`
	Due      int64     `json:"due"`
	NextTier *NextTier `json:"next_tier"`
}

// DiscountFor скидка по стандартной таблице
func DiscountFor(count int) int64 {
	return DefaultTiers.DiscountFor(count)
}

// Price считает стоимость корзины по стандартной таблице
func Price(c Cart) Quote {
	return DefaultTiers.Price(c)
}

// Price считает подытог, скидку, к оплате и следующую ступень.
// Скидка зависит только от количества, поэтому к оплате ограничено снизу нулём.
func (t TierTable) Price(c Cart) Quote {
	count := c.Count()
	subtotal := c.Subtotal()
	discount := t.DiscountFor(count)

	due := subtotal - discount
	if due < 0 {
		due = 0
	}

	return Quote{
		Count:    count,
		Subtotal: subtotal,
		Discount: discount,
		Due:      due,
		NextTier: t.Next(count),
	}
}
