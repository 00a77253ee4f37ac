package generator

var firstNames = []string{
	"Marco", "Giuseppe", "Luca", "Alessandro", "Andrea", "Francesco", "Matteo",
	"Lorenzo", "Davide", "Simone", "Federico", "Riccardo", "Stefano", "Paolo",
	"Giovanni", "Antonio", "Roberto", "Fabio", "Nicolò", "Gabriele", "Tommaso",
	"Emanuele", "Daniele", "Pietro", "Salvatore", "Giulia", "Francesca", "Chiara",
	"Sara", "Martina", "Valentina", "Alessia", "Elisa", "Federica", "Silvia",
	"Elena", "Laura", "Anna", "Giorgia", "Sofia", "Aurora", "Beatrice", "Camilla",
	"Noemi", "Ilaria", "Roberta", "Paola", "Serena", "Marta", "Rosa",
}

var lastNames = []string{
	"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo",
	"Ricci", "Marino", "Greco", "Bruno", "Gallo", "Conti", "De Luca", "Mancini",
	"Costa", "Giordano", "Rizzo", "Lombardi", "Moretti", "Barbieri", "Fontana",
	"Santoro", "Mariani", "Rinaldi", "Caruso", "Ferrara", "Galli", "Martini",
	"Leone", "Longo", "Gentile", "Martinelli", "Vitale", "Lombardo", "Serra",
	"Coppola", "De Santis", "D'Angelo", "Marchetti", "Parisi", "Villa", "Conte",
	"Ferraro", "Fabbri", "Bianco", "Marini", "Grasso", "Valentini", "D'Amico",
}

var emailProviders = []string{
	"gmail.com",
	"libero.it",
	"hotmail.it",
	"yahoo.it",
	"outlook.it",
	"virgilio.it",
	"alice.it",
	"tiscali.it",
	"icloud.com",
	"fastwebnet.it",
}

var phonePrefixes = []string{
	"320", "328", "329", "330", "331", "333", "334", "335", "336", "337",
	"338", "339", "340", "347", "348", "349", "350", "360", "366", "368",
}
