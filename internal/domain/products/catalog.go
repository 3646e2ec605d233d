package products

// Product is a static catalog entry. Price is in rubles; catalogs are never
// mutated after construction.
type Product struct {
	Brand       string `json:"brand"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// Category groups products for display, price-ascending.
type Category struct {
	Name     string    `json:"category"`
	Products []Product `json:"products"`
}

var cleansingOily = []Product{
	{Brand: "CeraVe", Name: "Foaming Facial Cleanser", Description: "Пенка с церамидами и ниацинамидом", Price: 1290, ImageURL: "/static/products/cerave-foaming-cleanser.jpg"},
	{Brand: "La Roche-Posay", Name: "Effaclar Gel", Description: "Гель для жирной кожи с цинком", Price: 1850, ImageURL: "/static/products/lrp-effaclar-gel.jpg"},
	{Brand: "Paula's Choice", Name: "CLEAR Pore Normalizing Cleanser", Description: "Мягкое очищение для проблемной кожи", Price: 2400, ImageURL: "/static/products/paulas-clear-cleanser.jpg"},
}

var cleansingDry = []Product{
	{Brand: "CeraVe", Name: "Hydrating Cleanser", Description: "Увлажняющее очищение с гиалуроновой кислотой", Price: 1250, ImageURL: "/static/products/cerave-hydrating-cleanser.jpg"},
	{Brand: "La Roche-Posay", Name: "Toleriane Caring Wash", Description: "Нежное очищение для чувствительной кожи", Price: 1990, ImageURL: "/static/products/lrp-toleriane-wash.jpg"},
	{Brand: "Avène", Name: "Xeracalm A.D Cleansing Oil", Description: "Липидовосполняющее масло для очищения", Price: 2150, ImageURL: "/static/products/avene-xeracalm-oil.jpg"},
}

var cleansingNormal = []Product{
	{Brand: "CeraVe", Name: "SA Smoothing Cleanser", Description: "Очищение с салициловой кислотой", Price: 1390, ImageURL: "/static/products/cerave-sa-cleanser.jpg"},
	{Brand: "Clinique", Name: "Liquid Facial Soap Mild", Description: "Мягкое мыло для лица", Price: 2290, ImageURL: "/static/products/clinique-liquid-soap.jpg"},
}

var acneTreatment = []Product{
	{Brand: "Paula's Choice", Name: "2% BHA Liquid Exfoliant", Description: "Культовый эксфолиант с салициловой кислотой", Price: 3290, ImageURL: "/static/products/paulas-bha-exfoliant.jpg"},
	{Brand: "The Ordinary", Name: "Niacinamide 10% + Zinc 1%", Description: "Сыворотка для сужения пор и контроля себума", Price: 990, ImageURL: "/static/products/ordinary-niacinamide.jpg"},
	{Brand: "La Roche-Posay", Name: "Effaclar Duo+", Description: "Корректирующий крем против несовершенств", Price: 1690, ImageURL: "/static/products/lrp-effaclar-duo.jpg"},
	{Brand: "Differin", Name: "Adapalene Gel 0.1%", Description: "Ретиноид для лечения акне", Price: 850, ImageURL: "/static/products/differin-adapalene.jpg"},
}

var brightening = []Product{
	{Brand: "The Ordinary", Name: "Alpha Arbutin 2% + HA", Description: "Сыворотка для осветления пигментации", Price: 1090, ImageURL: "/static/products/ordinary-alpha-arbutin.jpg"},
	{Brand: "Paula's Choice", Name: "C15 Super Booster", Description: "Концентрат витамина C 15%", Price: 4590, ImageURL: "/static/products/paulas-c15-booster.jpg"},
	{Brand: "Skinceuticals", Name: "C E Ferulic", Description: "Премиальная сыворотка с витамином C", Price: 13900, ImageURL: "/static/products/skinceuticals-ce-ferulic.jpg"},
	{Brand: "La Roche-Posay", Name: "Mela-D Pigment Control", Description: "Сыворотка против пигментных пятен", Price: 2890, ImageURL: "/static/products/lrp-mela-d.jpg"},
}

var moisturizingOily = []Product{
	{Brand: "CeraVe", Name: "PM Facial Moisturizing Lotion", Description: "Лёгкий увлажняющий лосьон с ниацинамидом", Price: 1350, ImageURL: "/static/products/cerave-pm-lotion.jpg"},
	{Brand: "La Roche-Posay", Name: "Effaclar Mat", Description: "Матирующий увлажняющий крем", Price: 1950, ImageURL: "/static/products/lrp-effaclar-mat.jpg"},
	{Brand: "Neutrogena", Name: "Hydro Boost Water Gel", Description: "Гель с гиалуроновой кислотой", Price: 1150, ImageURL: "/static/products/neutrogena-hydro-boost.jpg"},
}

var moisturizingDry = []Product{
	{Brand: "CeraVe", Name: "Moisturizing Cream", Description: "Насыщенный крем с церамидами", Price: 1450, ImageURL: "/static/products/cerave-moisturizing-cream.jpg"},
	{Brand: "La Roche-Posay", Name: "Cicaplast Baume B5+", Description: "Восстанавливающий бальзам", Price: 1390, ImageURL: "/static/products/lrp-cicaplast-b5.jpg"},
	{Brand: "Avène", Name: "XeraCalm A.D Lipid-Replenishing Cream", Description: "Крем для очень сухой кожи", Price: 2250, ImageURL: "/static/products/avene-xeracalm-cream.jpg"},
}

var moisturizingNormal = []Product{
	{Brand: "CeraVe", Name: "Daily Moisturizing Lotion", Description: "Ежедневный увлажняющий лосьон", Price: 1290, ImageURL: "/static/products/cerave-daily-lotion.jpg"},
	{Brand: "Clinique", Name: "Dramatically Different Moisturizing Gel", Description: "Культовый увлажняющий гель", Price: 3190, ImageURL: "/static/products/clinique-ddm-gel.jpg"},
}

var sunProtection = []Product{
	{Brand: "La Roche-Posay", Name: "Anthelios UVMune 400", Description: "Флюид SPF50+ с новейшими фильтрами", Price: 2490, ImageURL: "/static/products/lrp-anthelios-uvmune.jpg"},
	{Brand: "CeraVe", Name: "Hydrating Sunscreen SPF50", Description: "Увлажняющий солнцезащитный крем", Price: 1590, ImageURL: "/static/products/cerave-sunscreen-spf50.jpg"},
	{Brand: "Isdin", Name: "Fotoprotector Fusion Water", Description: "Лёгкая текстура, не оставляет белых следов", Price: 2690, ImageURL: "/static/products/isdin-fusion-water.jpg"},
	{Brand: "Bioderma", Name: "Photoderm MAX Aquafluide", Description: "Аквафлюид для чувствительной кожи", Price: 1990, ImageURL: "/static/products/bioderma-photoderm-max.jpg"},
}
