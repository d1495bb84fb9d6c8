package sample

import "strings"

type line struct {
	category string
	products []string
}

type catalog struct {
	keywords []string
	lines    []line
}

// catalogs are tried in order; the first whose keyword appears in the
// business description wins.
var catalogs = []catalog{
	{[]string{"restaurant", "food", "cafe", "dining", "kitchen"}, []line{
		{"Appetizers", []string{"Caesar Salad", "Buffalo Wings", "Mozzarella Sticks"}},
		{"Main Courses", []string{"Grilled Salmon", "Prime Ribeye Steak", "Chicken Parmesan"}},
		{"Beverages", []string{"Craft Beer Selection", "Premium Wine List", "Specialty Cocktails"}},
		{"Desserts", []string{"Chocolate Lava Cake", "Tiramisu", "Seasonal Fruit Tart"}},
		{"Specials", []string{"Chef's Daily Special", "Weekend Brunch Menu", "Holiday Feast"}},
	}},
	{[]string{"fitness", "gym", "health", "wellness", "sport"}, []line{
		{"Cardio Equipment", []string{"Professional Treadmill", "Elliptical Trainer", "Stationary Bike"}},
		{"Strength Training", []string{"Olympic Weight Set", "Power Rack System", "Adjustable Dumbbells"}},
		{"Accessories", []string{"Yoga Mat Premium", "Resistance Bands", "Foam Roller"}},
		{"Supplements", []string{"Whey Protein Powder", "Pre-Workout Formula", "Recovery Drink"}},
		{"Apparel", []string{"Athletic Shorts", "Performance T-Shirt", "Training Shoes"}},
	}},
	{[]string{"tech", "software", "electronics", "computer", "digital"}, []line{
		{"Computing", []string{"Gaming Laptop Pro", "Desktop Workstation", "Ultrabook Elite"}},
		{"Mobile Devices", []string{"Flagship Smartphone", "Tablet Pro", "Smartwatch Series"}},
		{"Audio/Visual", []string{"4K Monitor", "Wireless Headphones", "Streaming Camera"}},
		{"Gaming", []string{"Gaming Console", "Mechanical Keyboard", "Gaming Mouse Pro"}},
		{"Smart Home", []string{"Smart Thermostat", "Security Camera System", "Voice Assistant"}},
	}},
	{[]string{"clothing", "fashion", "apparel", "retail", "boutique"}, []line{
		{"Casual Wear", []string{"Designer Jeans", "Cotton T-Shirt", "Casual Hoodie"}},
		{"Formal Wear", []string{"Business Suit", "Evening Dress", "Dress Shirt"}},
		{"Footwear", []string{"Running Sneakers", "Leather Boots", "Dress Shoes"}},
		{"Accessories", []string{"Designer Handbag", "Luxury Watch", "Statement Jewelry"}},
		{"Seasonal", []string{"Winter Coat", "Summer Dress", "Beach Swimwear"}},
	}},
	{[]string{"automotive", "car", "vehicle", "auto"}, []line{
		{"Engine Parts", []string{"Performance Air Filter", "Turbocharger Kit", "Exhaust System"}},
		{"Body & Exterior", []string{"Carbon Fiber Hood", "LED Headlights", "Custom Wheels"}},
		{"Interior", []string{"Leather Seat Covers", "Dashboard Kit", "Floor Mats"}},
		{"Electronics", []string{"GPS Navigation", "Backup Camera", "Sound System"}},
		{"Maintenance", []string{"Motor Oil Premium", "Brake Pads", "Tire Set"}},
	}},
	{[]string{"beauty", "cosmetic", "skincare", "salon"}, []line{
		{"Skincare", []string{"Anti-Aging Serum", "Moisturizing Cream", "Cleansing Oil"}},
		{"Makeup", []string{"Foundation Premium", "Lipstick Collection", "Eyeshadow Palette"}},
		{"Haircare", []string{"Shampoo & Conditioner", "Hair Styling Cream", "Hair Dryer Pro"}},
		{"Fragrance", []string{"Luxury Perfume", "Body Spray", "Scented Candle"}},
		{"Tools", []string{"Makeup Brush Set", "Beauty Blender", "LED Mirror"}},
	}},
	{[]string{"home", "furniture", "decor", "garden"}, []line{
		{"Furniture", []string{"Leather Sofa Set", "Dining Table Oak", "Office Chair Ergonomic"}},
		{"Decor", []string{"Wall Art Canvas", "Table Lamp Modern", "Decorative Vase"}},
		{"Kitchen", []string{"Stainless Steel Cookware", "Coffee Machine Pro", "Blender High-Speed"}},
		{"Garden", []string{"Garden Tool Set", "Outdoor Furniture", "Plant Collection"}},
		{"Storage", []string{"Storage Bins", "Closet Organizer", "Garage Shelving"}},
	}},
}

var generic = catalog{lines: []line{
	{"Electronics", []string{"Premium Laptop Pro", "Wireless Gaming Headset", "4K Ultra HD TV", "Bluetooth Speaker Max",
		"Digital Camera Pro", "Wireless Earbuds Pro", "Gaming Desktop Ultimate"}},
	{"Home & Garden", []string{"Smart Home Security System", "Professional Coffee Machine", "Smart Thermostat"}},
	{"Health & Fitness", []string{"Fitness Tracker Elite", "Smart Watch Series X", "Yoga Mat Premium", "Protein Powder"}},
	{"Office & Business", []string{"Electric Standing Desk"}},
}}

func catalogFor(business string) catalog {
	lc := strings.ToLower(business)
	for _, c := range catalogs {
		for _, k := range c.keywords {
			if strings.Contains(lc, k) {
				return c
			}
		}
	}
	return generic
}

type product struct{ name, category string }

func (c catalog) products() []product {
	var out []product
	for _, l := range c.lines {
		for _, p := range l.products {
			out = append(out, product{p, l.category})
		}
	}
	return out
}

// budgetRanges are matched against the business description in order; the
// last entry is the fallback.
var budgetRanges = []struct {
	key      string
	min, max int
}{
	{"restaurant", 5000, 50000},
	{"fitness", 10000, 80000},
	{"tech", 20000, 200000},
	{"fashion", 8000, 60000},
	{"automotive", 15000, 150000},
	{"beauty", 5000, 40000},
	{"home", 10000, 100000},
	{"general", 8000, 80000},
}

func budgetRange(business string) (int, int) {
	lc := strings.ToLower(business)
	for _, r := range budgetRanges {
		if strings.Contains(lc, r.key) {
			return r.min, r.max
		}
	}
	last := budgetRanges[len(budgetRanges)-1]
	return last.min, last.max
}

var majorStates = map[string]bool{
	"California": true, "New York": true, "Texas": true, "Florida": true, "Illinois": true,
}

// Channels and their budget multiplier ranges.
var channels = []struct {
	name   string
	lo, hi float64
}{
	{"Online", 0.8, 1.2},
	{"Retail", 0.9, 1.1},
	{"Direct Sales", 1.1, 1.4},
	{"Partner", 0.7, 1.0},
	{"Wholesale", 0.6, 0.9},
}

var states = []struct {
	name   string
	cities []string
}{
	{"Alabama", []string{"Birmingham", "Mobile", "Montgomery"}},
	{"Alaska", []string{"Anchorage", "Fairbanks", "Juneau"}},
	{"Arizona", []string{"Phoenix", "Tucson", "Mesa"}},
	{"Arkansas", []string{"Little Rock", "Fort Smith", "Fayetteville"}},
	{"California", []string{"Los Angeles", "San Diego", "San Jose"}},
	{"Colorado", []string{"Denver", "Colorado Springs", "Aurora"}},
	{"Connecticut", []string{"Bridgeport", "New Haven", "Hartford"}},
	{"Delaware", []string{"Wilmington", "Dover", "Newark"}},
	{"Florida", []string{"Jacksonville", "Miami", "Tampa"}},
	{"Georgia", []string{"Atlanta", "Columbus", "Augusta"}},
	{"Hawaii", []string{"Honolulu", "Pearl City", "Hilo"}},
	{"Idaho", []string{"Boise", "Meridian", "Nampa"}},
	{"Illinois", []string{"Chicago", "Aurora", "Rockford"}},
	{"Indiana", []string{"Indianapolis", "Fort Wayne", "Evansville"}},
	{"Iowa", []string{"Des Moines", "Cedar Rapids", "Davenport"}},
	{"Kansas", []string{"Wichita", "Overland Park", "Kansas City"}},
	{"Kentucky", []string{"Louisville", "Lexington", "Bowling Green"}},
	{"Louisiana", []string{"New Orleans", "Baton Rouge", "Shreveport"}},
	{"Maine", []string{"Portland", "Lewiston", "Bangor"}},
	{"Maryland", []string{"Baltimore", "Frederick", "Rockville"}},
	{"Massachusetts", []string{"Boston", "Worcester", "Springfield"}},
	{"Michigan", []string{"Detroit", "Grand Rapids", "Warren"}},
	{"Minnesota", []string{"Minneapolis", "Saint Paul", "Rochester"}},
	{"Mississippi", []string{"Jackson", "Gulfport", "Southaven"}},
	{"Missouri", []string{"Kansas City", "Saint Louis", "Springfield"}},
	{"Montana", []string{"Billings", "Missoula", "Great Falls"}},
	{"Nebraska", []string{"Omaha", "Lincoln", "Bellevue"}},
	{"Nevada", []string{"Las Vegas", "Henderson", "Reno"}},
	{"New Hampshire", []string{"Manchester", "Nashua", "Concord"}},
	{"New Jersey", []string{"Newark", "Jersey City", "Paterson"}},
	{"New Mexico", []string{"Albuquerque", "Las Cruces", "Rio Rancho"}},
	{"New York", []string{"New York City", "Buffalo", "Rochester"}},
	{"North Carolina", []string{"Charlotte", "Raleigh", "Greensboro"}},
	{"North Dakota", []string{"Fargo", "Bismarck", "Grand Forks"}},
	{"Ohio", []string{"Columbus", "Cleveland", "Cincinnati"}},
	{"Oklahoma", []string{"Oklahoma City", "Tulsa", "Norman"}},
	{"Oregon", []string{"Portland", "Eugene", "Salem"}},
	{"Pennsylvania", []string{"Philadelphia", "Pittsburgh", "Allentown"}},
	{"Rhode Island", []string{"Providence", "Warwick", "Cranston"}},
	{"South Carolina", []string{"Charleston", "Columbia", "North Charleston"}},
	{"South Dakota", []string{"Sioux Falls", "Rapid City", "Aberdeen"}},
	{"Tennessee", []string{"Nashville", "Memphis", "Knoxville"}},
	{"Texas", []string{"Houston", "San Antonio", "Dallas"}},
	{"Utah", []string{"Salt Lake City", "West Valley City", "Provo"}},
	{"Vermont", []string{"Burlington", "Essex", "South Burlington"}},
	{"Virginia", []string{"Virginia Beach", "Norfolk", "Chesapeake"}},
	{"Washington", []string{"Seattle", "Spokane", "Tacoma"}},
	{"West Virginia", []string{"Charleston", "Huntington", "Parkersburg"}},
	{"Wisconsin", []string{"Milwaukee", "Madison", "Green Bay"}},
	{"Wyoming", []string{"Cheyenne", "Casper", "Laramie"}},
}
