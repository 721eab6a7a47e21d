package generate

var firstNames = []string{
	"Ada", "Bruno", "Chloe", "Dmitri", "Elena", "Farah",
	"Gavin", "Hana", "Ivan", "Jada", "Kofi", "Lena",
}

var lastNames = []string{
	"Abbott", "Byrne", "Castillo", "Dubois", "Eriksen", "Fujita",
	"Grant", "Haddad", "Ivanova", "Jensen", "Kowalski", "Lindqvist",
}

var productAdjectives = []string{
	"Aurora", "Summit", "Cypress", "Horizon", "Cascade", "Drift", "Ember", "Harbor",
}

var productNouns = []string{
	"Laptop", "Headphones", "Smartwatch", "Kettle", "Standing Desk", "Air Purifier", "Water Bottle", "Desk Lamp",
}

var categories = []string{
	"Electronics", "Wearables", "Kitchen", "Furniture", "Home", "Outdoors", "Accessories",
}
