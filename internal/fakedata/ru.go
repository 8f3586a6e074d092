package fakedata

// Russian-locale corpora, same compact-sample rationale as en.go.

var ruFirstNamesMale = []string{
	"Aleksandr", "Dmitriy", "Maksim", "Sergey", "Andrey", "Aleksey",
	"Artem", "Ilya", "Kirill", "Mikhail",
}

var ruFirstNamesFemale = []string{
	"Anna", "Mariya", "Elena", "Olga", "Tatiana", "Natalia",
	"Irina", "Svetlana", "Yulia", "Ekaterina",
}

var ruLastNamesMale = []string{
	"Ivanov", "Smirnov", "Kuznetsov", "Popov", "Vasiliev", "Petrov",
	"Sokolov", "Mikhailov", "Novikov", "Fedorov",
}

var ruLastNamesFemale = []string{
	"Ivanova", "Smirnova", "Kuznetsova", "Popova", "Vasilieva", "Petrova",
	"Sokolova", "Mikhailova", "Novikova", "Fedorova",
}

var ruPatronymics = []string{
	"Aleksandrovich", "Dmitrievich", "Sergeevich", "Andreevich",
	"Ivanovna", "Sergeevna", "Andreevna", "Petrovna",
}

var ruEmailDomains = []string{
	"yandex.ru", "mail.ru", "rambler.ru", "gmail.com", "bk.ru",
}

var ruStreets = []string{
	"ul. Lenina", "ul. Mira", "ul. Sovetskaya", "ul. Gagarina", "ul. Pobedy",
}

var ruCities = []string{
	"Moskva", "Sankt-Peterburg", "Novosibirsk", "Ekaterinburg", "Kazan",
}
