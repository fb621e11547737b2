package taxonomy

// Default returns the built-in NAICS-inspired taxonomy. Sector, subsector,
// and keyword order here is authoritative: the rule classifier resolves
// overlapping keywords by first match in this order.
func Default() *Taxonomy {
	return New([]Sector{
		{Name: "Food & Beverage", Subsectors: []Subsector{
			{Name: "Restaurants", Keywords: []string{"restaurant", "cafe", "diner", "eatery", "bistro", "grill"}},
			{Name: "Fast Food", Keywords: []string{"fast food", "quick service", "burger", "pizza", "sandwich", "taco"}},
			{Name: "Coffee & Tea", Keywords: []string{"coffee", "tea", "espresso", "cafe", "coffeehouse"}},
			{Name: "Bars & Nightlife", Keywords: []string{"bar", "pub", "lounge", "nightclub", "brewery", "tavern"}},
			{Name: "Bakery & Desserts", Keywords: []string{"bakery", "pastry", "dessert", "ice cream", "donut", "cake"}},
			{Name: "Specialty Food", Keywords: []string{"deli", "grocery", "market", "butcher", "seafood", "organic"}},
		}},
		{Name: "Retail", Subsectors: []Subsector{
			{Name: "Clothing & Apparel", Keywords: []string{"clothing", "apparel", "fashion", "boutique", "shoes", "accessories"}},
			{Name: "General Merchandise", Keywords: []string{"department store", "variety store", "discount", "warehouse"}},
			{Name: "Specialty Retail", Keywords: []string{"gift", "toys", "books", "music", "electronics", "hobby"}},
			{Name: "Home & Garden", Keywords: []string{"furniture", "home decor", "garden", "hardware", "appliances"}},
			{Name: "Automotive Retail", Keywords: []string{"auto parts", "tire", "accessories", "motorcycle"}},
		}},
		{Name: "Personal Services", Subsectors: []Subsector{
			{Name: "Health & Beauty", Keywords: []string{"salon", "spa", "barber", "nail", "beauty", "massage", "cosmetic"}},
			{Name: "Fitness & Recreation", Keywords: []string{"gym", "fitness", "yoga", "pilates", "martial arts", "dance"}},
			{Name: "Dry Cleaning & Laundry", Keywords: []string{"dry clean", "laundry", "alterations"}},
			{Name: "Pet Services", Keywords: []string{"pet grooming", "veterinary", "pet store", "animal"}},
		}},
		{Name: "Professional Services", Subsectors: []Subsector{
			{Name: "Financial Services", Keywords: []string{"bank", "credit union", "insurance", "financial", "investment", "tax"}},
			{Name: "Real Estate", Keywords: []string{"real estate", "property management", "realty"}},
			{Name: "Legal Services", Keywords: []string{"attorney", "lawyer", "legal", "law office"}},
			{Name: "Accounting", Keywords: []string{"accounting", "cpa", "bookkeeping"}},
			{Name: "Consulting", Keywords: []string{"consulting", "consultant", "advisory"}},
		}},
		{Name: "Healthcare", Subsectors: []Subsector{
			{Name: "Medical Offices", Keywords: []string{"doctor", "physician", "clinic", "medical", "dentist", "dental"}},
			{Name: "Pharmacy", Keywords: []string{"pharmacy", "drugstore", "prescription"}},
			{Name: "Specialized Healthcare", Keywords: []string{"chiropractor", "optometry", "physical therapy", "acupuncture"}},
			{Name: "Mental Health", Keywords: []string{"counseling", "therapy", "psychologist", "psychiatrist"}},
		}},
		{Name: "Automotive Services", Subsectors: []Subsector{
			{Name: "Repair & Maintenance", Keywords: []string{"auto repair", "mechanic", "oil change", "brake", "muffler"}},
			{Name: "Car Wash & Detailing", Keywords: []string{"car wash", "detailing", "auto spa"}},
			{Name: "Towing & Roadside", Keywords: []string{"towing", "roadside", "wrecker"}},
		}},
		{Name: "Home Services", Subsectors: []Subsector{
			{Name: "Construction & Contractors", Keywords: []string{"construction", "contractor", "builder", "remodeling"}},
			{Name: "Plumbing & HVAC", Keywords: []string{"plumbing", "plumber", "hvac", "heating", "cooling", "air conditioning"}},
			{Name: "Electrical", Keywords: []string{"electrical", "electrician"}},
			{Name: "Cleaning Services", Keywords: []string{"cleaning", "janitorial", "maid", "housekeeping"}},
			{Name: "Landscaping", Keywords: []string{"landscaping", "lawn care", "tree service", "gardening"}},
		}},
		{Name: "Education & Childcare", Subsectors: []Subsector{
			{Name: "Schools", Keywords: []string{"school", "academy", "learning center", "education"}},
			{Name: "Tutoring", Keywords: []string{"tutoring", "tutor", "test prep"}},
			{Name: "Childcare", Keywords: []string{"daycare", "preschool", "child care", "nursery"}},
		}},
		{Name: "Entertainment & Recreation", Subsectors: []Subsector{
			{Name: "Arts & Entertainment", Keywords: []string{"theater", "cinema", "movie", "entertainment", "museum"}},
			{Name: "Sports & Recreation", Keywords: []string{"sports", "recreation", "bowling", "golf", "skating"}},
			{Name: "Events & Venues", Keywords: []string{"event", "venue", "banquet", "catering"}},
		}},
		{Name: "Lodging", Subsectors: []Subsector{
			{Name: "Hotels & Motels", Keywords: []string{"hotel", "motel", "inn", "lodge"}},
			{Name: "Alternative Lodging", Keywords: []string{"bed and breakfast", "hostel", "vacation rental"}},
		}},
		{Name: "Technology", Subsectors: []Subsector{
			{Name: "IT Services", Keywords: []string{"computer repair", "it services", "tech support", "software"}},
			{Name: "Telecommunications", Keywords: []string{"wireless", "phone", "mobile", "telecom"}},
		}},
		{Name: "Other Services", Subsectors: []Subsector{
			{Name: "Business Services", Keywords: []string{"printing", "shipping", "mailing", "packaging", "copy"}},
			{Name: "Travel Services", Keywords: []string{"travel agency", "travel", "tour"}},
			// Catch-all bucket for unclassified categories; no keywords on purpose.
			{Name: "Miscellaneous"},
		}},
	})
}
