package handlers

// Project is a portfolio entry on the landing page.
type Project struct {
	Title string
	Desc  string
	Link  string
	Image string
}

// Tile is a feature or service card.
type Tile struct {
	Title string
	Icon  string
	Desc  string
}

var projects = []Project{
	{
		Title: "DailyNews24",
		Desc:  "A news platform delivering fast, accurate updates across national and international news, entertainment, politics, sports, business and lifestyle.",
		Link:  "https://apps.apple.com/in/app/dailynews24/id6744032665",
		Image: "https://images.unsplash.com/photo-1588681664899-f142ff2dc9b1?auto=format&fit=crop&w=400&q=80",
	},
	{
		Title: "YLogLite",
		Desc:  "Real-time tracking with BLE, designed for seamless communication and vehicle tracking.",
		Link:  "https://play.google.com/store/apps/details?id=com.yloglite.activity",
		Image: "https://images.unsplash.com/photo-1563014959-7aaa83350992?auto=format&fit=crop&w=400&q=80",
	},
	{
		Title: "YLogForms",
		Desc:  "Innovative solution for feeding routine data in an electronic form with ease.",
		Link:  "https://play.google.com/store/apps/details?id=com.yusata.ylogforms",
		Image: "https://images.unsplash.com/photo-1581291518633-83b4ebd1d83e?auto=format&fit=crop&w=400&q=80",
	},
	{
		Title: "YLog365",
		Desc:  "Smart functions for real-time tracking with an easy-to-use tracking interface.",
		Link:  "https://play.google.com/store/apps/details?id=com.app.ylog365",
		Image: "https://images.unsplash.com/photo-1616007736933-54d2525a2c19?auto=format&fit=crop&w=400&q=80",
	},
	{
		Title: "ShootCx",
		Desc:  "Affordable, quick and convenient party store, grocery, lunch and dinner deliveries.",
		Link:  "https://play.google.com/store/apps/details?id=com.SHOOTCxnew.customer",
		Image: "https://images.unsplash.com/photo-1607083206968-13611e3d76db?auto=format&fit=crop&w=400&q=80",
	},
	{
		Title: "MiniManager",
		Desc:  "Delivery management for PVS, simplifying logistics and delivery tracking.",
		Link:  "https://play.google.com/store/apps/details?id=com.minimanager",
		Image: "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?auto=format&fit=crop&w=400&q=80",
	},
}

var features = []Tile{
	{Title: "Fast Performance", Icon: "rocket", Desc: "Optimized for speed and performance"},
	{Title: "Fully Responsive", Icon: "mobile-alt", Desc: "Looks great on any device"},
	{Title: "Secure & Safe", Icon: "lock", Desc: "Built with security in mind"},
}

var services = []Tile{
	{Title: "Web Design", Icon: "paint-brush", Desc: "Beautiful, modern website designs"},
	{Title: "Web Development", Icon: "code", Desc: "Custom web development solutions"},
	{Title: "E-commerce Solutions", Icon: "shopping-cart", Desc: "Complete online store development"},
	{Title: "SEO Optimization", Icon: "search", Desc: "Improve your website's visibility"},
	{Title: "Digital Marketing", Icon: "chart-line", Desc: "Data-driven marketing campaigns"},
	{Title: "Cloud Hosting", Icon: "cloud", Desc: "Reliable, scalable cloud hosting"},
}
