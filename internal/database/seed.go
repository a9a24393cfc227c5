package database

import (
	"fmt"

	"github.com/mrlokans/catalog/internal/entities"
)

var namedSampleBooks = []entities.Book{
	{Title: "Автостопом по галактике", Author: "Дуглас Адамс", Pages: 416, Publisher: "АСТ", CoverImage: "Hitchhiker.jpg"},
	{Title: "451 градус по Фаренгейту", Author: "Рэй Брэдбери", Pages: 256, Publisher: "Эксмо", CoverImage: "Fahrenheit_451.jpg"},
	{Title: "Дюна", Author: "Фрэнк Герберт", Pages: 896, Publisher: "АСТ", CoverImage: "Dune.jpg"},
	{Title: "1984", Author: "Джордж Оруэлл", Pages: 352, Publisher: "АСТ", CoverImage: "1984.jpg"},
	{Title: "Долгая прогулка", Author: "Стивен Кинг (как Ричард Бахман)", Pages: 384, Publisher: "АСТ", CoverImage: "Long_Walk.jpg"},
	{Title: "Пикник на обочине", Author: "Аркадий и Борис Стругацкие", Pages: 224, Publisher: "АСТ", CoverImage: "Roadside_Picnic.jpg"},
	{Title: "Метро 2033", Author: "Дмитрий Глуховский", Pages: 544, Publisher: "АСТ", CoverImage: "Metro_2033.jpg"},
	{Title: "Метро 2034", Author: "Дмитрий Глуховский", Pages: 448, Publisher: "АСТ", CoverImage: "Metro_2034.jpg"},
	{Title: "Метро 2035", Author: "Дмитрий Глуховский", Pages: 384, Publisher: "АСТ", CoverImage: "Metro_2035.jpg"},
	{Title: "Кладбище домашних животных", Author: "Стивен Кинг", Pages: 480, Publisher: "АСТ", CoverImage: "Pet_Sematary.jpg"},
	{Title: "Противостояние", Author: "Стивен Кинг", Pages: 1248, Publisher: "АСТ", CoverImage: "The_Stand.jpg"},
	{Title: "Сияние", Author: "Стивен Кинг", Pages: 416, Publisher: "АСТ", CoverImage: "The_Shining.jpg"},
	{Title: "Метро 2033: Путевые знаки", Author: "Владимир Березин", Pages: 352, Publisher: "АСТ", CoverImage: "Putevye_znaki.jpg"},
	{Title: "Темная Башня: Стрелок", Author: "Стивен Кинг", Pages: 320, Publisher: "АСТ", CoverImage: "Dark_Tower_Gunslinger.jpg"},
	{Title: "Собачье сердце", Author: "Михаил Булгаков", Pages: 192, Publisher: "Фолио", CoverImage: "dog_heart.jpg"},
	{Title: "Бесы", Author: "Федор Достоевский", Pages: 768, Publisher: "Эксмо", CoverImage: "demons.jpg"},
	{Title: "Гроза", Author: "Александр Островский", Pages: 128, Publisher: "Эксмо", CoverImage: "thunderstorm.jpg"},
	{Title: "Тихий Дон", Author: "Михаил Шолохов", Pages: 1504, Publisher: "Эксмо", CoverImage: "quiet_don.jpg"},
	{Title: "Поднятая целина", Author: "Михаил Шолохов", Pages: 672, Publisher: "Азбука", CoverImage: "virgin_soil.jpg"},
	{Title: "Доктор Живаго", Author: "Борис Пастернак", Pages: 592, Publisher: "Фолио", CoverImage: "doctor_zhivago.jpg"},
	{Title: "Белая гвардия", Author: "Михаил Булгаков", Pages: 352, Publisher: "АСТ", CoverImage: "white_guard.jpg"},
	{Title: "Двенадцать стульев", Author: "Ильф и Петров", Pages: 416, Publisher: "Эксмо", CoverImage: "twelve_chairs.jpg"},
	{Title: "Золотой теленок", Author: "Ильф и Петров", Pages: 384, Publisher: "Азбука", CoverImage: "golden_calf.jpg"},
	{Title: "Как закалялась сталь", Author: "Николай Островский", Pages: 416, Publisher: "Фолио", CoverImage: "how_steel_tempered.jpg"},
}

// SampleBooks returns the first-run catalogue: the named titles plus 100 generated rows.
func SampleBooks() []entities.Book {
	labels := []string{"A", "B", "C", "D", "E", "F"}

	books := make([]entities.Book, 0, len(namedSampleBooks)+100)
	books = append(books, namedSampleBooks...)
	for i := 1; i <= 100; i++ {
		books = append(books, entities.Book{
			Title:      fmt.Sprintf("Книга пример %d", i),
			Author:     "Автор " + labels[i%5],
			Pages:      200 + i*10,
			Publisher:  "Издательство " + labels[i%5],
			CoverImage: entities.DefaultCoverImage,
		})
	}
	return books
}
