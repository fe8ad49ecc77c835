package exam

import (
	"math/rand"
	"testing"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
)

func makeBank(n int) *Bank {
	b := &Bank{}
	for i := 0; i < n; i++ {
		q := model.Question{ID: uuid.New(), QuestionText: "q"}
		b.Questions = append(b.Questions, q)

		correct := model.Choice{ID: uuid.New(), QuestionID: q.ID, ChoiceText: "right", IsCorrect: true}
		wrong := model.Choice{ID: uuid.New(), QuestionID: q.ID, ChoiceText: "wrong"}
		b.Choices = append(b.Choices, correct, wrong)
	}
	return b
}

func TestSampleTruncatesToQuestionCount(t *testing.T) {
	bank := makeBank(30)
	sample, err := bank.Sample(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(sample) != QuestionCount {
		t.Fatalf("sample size = %d, want %d", len(sample), QuestionCount)
	}

	seen := make(map[uuid.UUID]bool, len(sample))
	for _, q := range sample {
		if seen[q.ID] {
			t.Fatalf("duplicate question %s in sample", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSampleSmallBankUsesAllQuestions(t *testing.T) {
	bank := makeBank(10)
	sample, err := bank.Sample(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(sample) != 10 {
		t.Fatalf("sample size = %d, want 10", len(sample))
	}
}

func TestSampleEmptyBank(t *testing.T) {
	bank := &Bank{}
	if _, err := bank.Sample(rand.New(rand.NewSource(1))); err != ErrEmptyBank {
		t.Fatalf("err = %v, want ErrEmptyBank", err)
	}
}

func TestSampleIsRandomized(t *testing.T) {
	bank := makeBank(30)

	first, err := bank.Sample(rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	second, err := bank.Sample(rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	same := true
	for i := range first {
		if first[i].ID != second[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Fatal("two independent samples produced identical order")
	}

	// The bank itself must keep its original order.
	for i, q := range bank.Questions {
		if i > 0 && q.ID == bank.Questions[i-1].ID {
			t.Fatal("bank mutated by sampling")
		}
	}
}

func TestChoicesByQuestion(t *testing.T) {
	bank := makeBank(3)
	grouped := bank.ChoicesByQuestion()
	if len(grouped) != 3 {
		t.Fatalf("grouped %d questions, want 3", len(grouped))
	}
	for _, q := range bank.Questions {
		if len(grouped[q.ID]) != 2 {
			t.Errorf("question %s has %d choices, want 2", q.ID, len(grouped[q.ID]))
		}
	}
}
