package handler

import (
	"errors"
	"fmt"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"
)

// wordsPerPage is the word list page size
const wordsPerPage = 7

const (
	msgMainMenu        = "🏠 Ana Menü\n\nBir işlem seçin:"
	msgAccessGranted   = "✅ Giriş başarılı!\n\n" + msgMainMenu
	msgWrongPassword   = "Şifre yanlış"
	msgAskEnglish      = "İngilizce kelimeyi gönder:"
	msgAskTurkish      = "Türkçe anlamını gönder (birden fazla anlamı virgülle ayırabilirsin):"
	msgEmptyField      = "Lütfen hem İngilizce hem de Türkçe anlamı girin!"
	msgDuplicateWord   = "Bu kelime zaten mevcut!"
	msgWordAdded       = "Kelime başarıyla eklendi!"
	msgWordDeleted     = "Kelime silindi!"
	msgWordNotFound    = "Kelime bulunamadı"
	msgNoWords         = "Henüz kelime eklenmemiş."
	msgNoWordsForGame  = "Oyunu başlatmak için en az bir kelime eklemelisiniz!"
	msgGameStarted     = "Oyun başladı! Bitirmek için /stop yaz."
	msgNoActiveGame    = "Şu anda aktif bir oyun yok."
	msgGameInProgress  = "Şu anda bir oyun devam ediyor. Önce /stop ile bitir."
	msgInvalidPage     = "Geçersiz sayfa"
	msgConfirmDeletion = "Bu kelimeyi silmek istediğinizden emin misiniz?"
)

// errorText maps service errors to the text shown to the user
func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyField):
		return msgEmptyField
	case errors.Is(err, domain.ErrDuplicateWord):
		return msgDuplicateWord
	case errors.Is(err, domain.ErrNoWordsAvailable):
		return msgNoWordsForGame
	case errors.Is(err, domain.ErrAlreadyPlaying):
		return msgGameInProgress
	default:
		return middleware.GenericError
	}
}

func formatQuestion(english string) string {
	return fmt.Sprintf("❓ %s\n\nTürkçe anlamı nedir?", english)
}

func formatFeedback(f domain.Feedback) string {
	if f.Correct {
		return "✅ " + f.Message
	}
	return "❌ " + f.Message
}

func formatLiveStats(s domain.Stats) string {
	return fmt.Sprintf("Doğru: %d · Yanlış: %d · Toplam: %d", s.CorrectAnswers, s.WrongAnswers, s.TotalQuestions)
}

func formatSummary(s domain.Stats) string {
	return fmt.Sprintf("Oyun bitti! Toplam: %d soru, Doğru: %d, Yanlış: %d, Başarı: %%%d",
		s.TotalQuestions, s.CorrectAnswers, s.WrongAnswers, s.Accuracy())
}

func formatWordAdded(w domain.Word) string {
	return fmt.Sprintf("✅ %s\n\n%s — %s\n\nSıradaki İngilizce kelimeyi gönderebilir veya /start ile menüye dönebilirsin.",
		msgWordAdded, w.English, w.Turkish)
}

func formatTheme(dark bool) string {
	if dark {
		return "🌙 Koyu tema seçildi"
	}
	return "☀️ Açık tema seçildi"
}

// paginate returns the bounds of the requested page, clamped to the valid range
func paginate(total, page, size int) (start, end, current, pages int) {
	pages = (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	current = page
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = pages
	}
	start = (current - 1) * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end, current, pages
}

func formatWordList(words []domain.Word, start, page, pages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Kelimelerin (%d)", len(words))
	if pages > 1 {
		fmt.Fprintf(&b, " · Sayfa %d/%d", page, pages)
	}
	b.WriteString("\n\n")

	end := start + wordsPerPage
	if end > len(words) {
		end = len(words)
	}
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, words[i].English, words[i].Turkish)
	}
	return b.String()
}
