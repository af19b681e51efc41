package menu

type seedItem struct {
	id       string
	name     string
	price    int64
	category Category
}

var catalog = []seedItem{
	{"coffee-da", "Cà phê đá", 25000, CategoryCoffee},
	{"coffee-nong", "Cà phê nóng", 25000, CategoryCoffee},
	{"bac-xiu", "Bạc xỉu", 30000, CategoryCoffee},
	{"ca-phe-sua", "Cà phê sữa", 28000, CategoryCoffee},
	{"espresso", "Espresso", 35000, CategoryCoffee},
	{"americano", "Americano", 32000, CategoryCoffee},
	{"cappuccino", "Cappuccino", 45000, CategoryCoffee},
	{"latte", "Latte", 48000, CategoryCoffee},

	{"tra-sua-tran-chau", "Trà sữa trân châu", 40000, CategoryTea},
	{"tra-sua-matcha", "Trà sữa matcha", 42000, CategoryTea},
	{"tra-sua-thai", "Trà sữa Thái", 38000, CategoryTea},
	{"tra-dao", "Trà đào", 35000, CategoryTea},
	{"tra-chanh", "Trà chanh", 30000, CategoryTea},
	{"tra-gung", "Trà gừng", 32000, CategoryTea},

	{"nuoc-cam", "Nước cam", 35000, CategoryJuice},
	{"sinh-to-bo", "Sinh tố bơ", 40000, CategoryJuice},
	{"sinh-to-xoai", "Sinh tố xoài", 38000, CategoryJuice},
	{"nuoc-dua", "Nước dừa", 25000, CategoryJuice},
	{"da-chanh", "Đá chanh", 20000, CategoryJuice},

	{"banh-mi", "Bánh mì", 25000, CategorySnacks},
	{"banh-croissant", "Bánh croissant", 35000, CategorySnacks},
	{"banh-tiramisu", "Bánh tiramisu", 45000, CategorySnacks},
	{"banh-cheesecake", "Bánh cheesecake", 50000, CategorySnacks},

	{"com-ga", "Cơm gà", 65000, CategoryFood},
	{"bun-bo", "Bún bò", 55000, CategoryFood},
	{"pho-bo", "Phở bò", 60000, CategoryFood},
	{"mi-quang", "Mì Quảng", 58000, CategoryFood},
}

// DefaultCatalog returns the starting menu, all items available.
func DefaultCatalog() []MenuItem {
	items := make([]MenuItem, 0, len(catalog))
	for _, s := range catalog {
		items = append(items, MenuItem{
			ID:        s.id,
			Name:      s.name,
			Price:     s.price,
			Category:  s.category,
			Available: true,
		})
	}
	return items
}
