package main

import (
	"context"
	"fmt"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/config"
	"github.com/avtomaktab/avtotest-backend/internal/database"
	"github.com/avtomaktab/avtotest-backend/internal/logger"
	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/repository"
	"github.com/avtomaktab/avtotest-backend/internal/service"
)

type seedQuestion struct {
	text    string
	choices []string
	correct int
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	questionService := service.NewQuestionService(questionRepo)

	existing, err := questionRepo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count questions")
	}
	if existing > 0 {
		fmt.Printf("Question bank already has %d questions, nothing to do\n", existing)
		return
	}

	seeds := []seedQuestion{
		{
			text:    "Svetoforning sariq chirog'i nimani bildiradi?",
			choices: []string{"Harakatlanish mumkin", "Harakat taqiqlanadi, to'xtash kerak", "Tezlikni oshirish kerak", "Faqat chapga burilish mumkin"},
			correct: 1,
		},
		{
			text:    "Aholi punktlarida yengil avtomobillar uchun ruxsat etilgan eng yuqori tezlik qancha?",
			choices: []string{"60 km/soat", "70 km/soat", "80 km/soat", "90 km/soat"},
			correct: 0,
		},
		{
			text:    "Piyodalar o'tish joyiga yaqinlashganda haydovchi nima qilishi kerak?",
			choices: []string{"Tezlikni oshirishi", "Signal berishi", "Tezlikni kamaytirib, piyodalarga yo'l berishi", "Chiroqlarni yoqishi"},
			correct: 2,
		},
		{
			text:    "Qaysi holatda quvib o'tish taqiqlanadi?",
			choices: []string{"Kunduzi ochiq yo'lda", "Piyodalar o'tish joylarida", "Ikki tomonlama yo'lda", "Shahar tashqarisida"},
			correct: 1,
		},
		{
			text:    "Harakat paytida xavfsizlik kamarini taqish kimlar uchun majburiy?",
			choices: []string{"Faqat haydovchi uchun", "Faqat old o'rindiqda o'tirganlar uchun", "Haydovchi va barcha yo'lovchilar uchun", "Faqat bolalar uchun"},
			correct: 2,
		},
		{
			text:    "\"Asosiy yo'l\" belgisi o'rnatilgan yo'lda harakatlanayotgan haydovchi chorrahada nima qiladi?",
			choices: []string{"Hammaga yo'l beradi", "Imtiyozga ega bo'ladi", "To'xtab o'tkazadi", "Faqat o'ngga buriladi"},
			correct: 1,
		},
		{
			text:    "Tuman sharoitida qaysi chiroqlardan foydalanish kerak?",
			choices: []string{"Uzoq nur chiroqlari", "Yaqin nur va tumanga qarshi chiroqlar", "Faqat gabarit chiroqlari", "Avariya signalizatsiyasi"},
			correct: 1,
		},
		{
			text:    "Chorrahada tartibga soluvchining qo'li yuqoriga ko'tarilgan bo'lsa, bu nimani anglatadi?",
			choices: []string{"Barcha yo'nalishda harakat taqiqlanadi", "Faqat tramvaylar harakatlanadi", "Harakat erkin", "Chapga burilish mumkin"},
			correct: 0,
		},
		{
			text:    "Yo'l-transport hodisasi sodir bo'lganda haydovchi birinchi navbatda nima qilishi shart?",
			choices: []string{"Hodisa joyini tark etishi", "To'xtab, avariya signalizatsiyasini yoqishi", "Guvohlarni izlashi", "Avtomobilni yo'l chetiga olib chiqishi"},
			correct: 1,
		},
		{
			text:    "Yashash zonasida ruxsat etilgan eng yuqori tezlik qancha?",
			choices: []string{"20 km/soat", "30 km/soat", "40 km/soat", "60 km/soat"},
			correct: 0,
		},
		{
			text:    "Avtomagistralda to'xtash qayerda ruxsat etiladi?",
			choices: []string{"Har qanday joyda", "Yo'l chetida", "Faqat maxsus to'xtash maydonchalarida", "Chap qatorda"},
			correct: 2,
		},
		{
			text:    "Spirtli ichimlik ichgan holda transport vositasini boshqarish qanday baholanadi?",
			choices: []string{"Ogohlantirish bilan", "Qat'iyan taqiqlanadi", "Tungi vaqtda ruxsat etiladi", "Yo'lovchisiz ruxsat etiladi"},
			correct: 1,
		},
	}

	fmt.Printf("=== Seeding %d Questions ===\n", len(seeds))

	for i, seed := range seeds {
		req := &model.CreateQuestionRequest{QuestionText: seed.text}
		for j, text := range seed.choices {
			req.Choices = append(req.Choices, model.AddChoiceRequest{
				ChoiceText: text,
				IsCorrect:  j == seed.correct,
			})
		}

		if _, _, err := questionService.Create(ctx, req); err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("Failed to seed question")
		}
		fmt.Printf("  [%d/%d] %s\n", i+1, len(seeds), seed.text)
	}

	fmt.Println("Done")
}
