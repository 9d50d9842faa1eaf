package bot

import (
	"fmt"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
	"github.com/vbonduro/showmyfood/internal/textparse"
)

const (
	msgStart = "Привет! Я расскажу, что у вас на тарелке.\n\n" +
		"Пришлите фото блюда или опишите его текстом, например:\n" +
		"«паста карбонара 250г запеченная»\n\n" +
		"Команды:\n" +
		"/fact — ещё один факт о текущем блюде\n" +
		"/quote — совет по фуд-фотографии\n" +
		"/reset — начать заново\n" +
		"/privacy — как я обращаюсь с данными\n" +
		"/help — справка"

	msgHelp = "Пришлите фото блюда — я предложу варианты, а вы подтвердите нужный.\n" +
		"Или опишите блюдо текстом: название, вес в граммах и способ приготовления.\n\n" +
		"После анализа можно уточнить вес и способ готовки кнопками под карточкой."

	msgPrivacy = "Фотографии обрабатываются в памяти и никуда не сохраняются.\n" +
		"История диалога живёт 30 минут с последнего сообщения, затем стирается.\n" +
		"Постоянной базы пользователей у бота нет."

	msgReset = "Начнём заново. Пришлите фото блюда или опишите его текстом."

	msgInternalError = "Что-то пошло не так. Попробуйте ещё раз чуть позже."

	msgAskDishName = "Напишите название блюда текстом, например «борщ 300г»."

	msgUnknownPhoto = "Не удалось распознать блюдо на фото. " + msgAskDishName

	msgPhotoTooLarge = "Фото слишком большое, я принимаю файлы до 20 МБ."

	msgPhotoDownloadFailed = "Не получилось скачать фото. Попробуйте прислать его ещё раз."

	msgBadDishName = "Не похоже на название блюда. Название — от 2 до 100 символов, без спецзнаков."

	msgBadWeight = "Вес порции — целое число грамм от 1 до 5000, например «300»."

	msgAskWeight = "Укажите вес порции в граммах, например «300»."

	msgNoDishYet = "Сначала расскажите о блюде: пришлите фото или опишите его текстом."

	msgNoMoreFacts = "Новых фактов про это блюдо у меня не осталось, зато вот кое-что о еде вообще:"

	msgConfirmDish = "Похоже, это одно из этих блюд. Какое именно?"
)

func msgAskCooking() string {
	methods := []string{"варка", "жарка", "запекание", "тушение", "гриль", "жарка на углях", "на пару", "сырой"}
	return "Как приготовлено блюдо? Например: " + strings.Join(methods, ", ") + "."
}

func msgBadCooking() string {
	return "Такого способа приготовления я не знаю. " + msgAskCooking()
}

// formatCaption builds the text that accompanies the card: the estimate
// summary, the facts with their sources, and any assumptions made.
func formatCaption(est *domain.NutrientEstimate, facts []domain.DishFact, fallback bool) string {
	var sb strings.Builder

	if est != nil {
		fmt.Fprintf(&sb, "%s, %d г (%s)\n", capitalizeFirst(est.DishName), est.WeightGrams, est.CookingMethod)
		fmt.Fprintf(&sb, "Калории: %.0f ккал\nБелки: %.1f г · Жиры: %.1f г · Углеводы: %.1f г\n",
			est.TotalKcal, est.TotalProtein, est.TotalFat, est.TotalCarbs)
		for _, a := range est.Assumptions {
			sb.WriteString(a)
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("Этого блюда нет в моей таблице калорийности, но вот что я знаю:\n")
	}

	if len(facts) > 0 {
		sb.WriteString("\n")
		if fallback && est != nil {
			sb.WriteString("Фактов именно об этом блюде не нашлось, зато:\n")
		}
		for _, f := range facts {
			fmt.Fprintf(&sb, "• %s", f.Text)
			if srcs := textparse.FormatSources(f.Sources); srcs != "" {
				fmt.Fprintf(&sb, " (%s)", srcs)
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatQuote(q domain.Quote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "«%s»\n— %s", q.Text, q.Author)
	if q.Profession != "" {
		fmt.Fprintf(&sb, ", %s", q.Profession)
	}
	if q.Context != "" {
		fmt.Fprintf(&sb, "\n\n%s", q.Context)
	}
	return sb.String()
}

func formatFactList(facts []domain.DishFact) string {
	var sb strings.Builder
	for i, f := range facts {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(f.Text)
		if srcs := textparse.FormatSources(f.Sources); srcs != "" {
			fmt.Fprintf(&sb, " (%s)", srcs)
		}
	}
	return sb.String()
}

func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
