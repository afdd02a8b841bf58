package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/service"
)

const barCell = "█"

// RenderHeader prints the logo block.
func (s *Screen) RenderHeader() {
	s.Println(s.paint(styleBrightYellow, logo))
	s.Println(s.paint(styleBrightCyan, subtitle))
	s.Println()
}

// RenderLoading shows the header while the catalog is fetched.
func (s *Screen) RenderLoading() {
	s.Clear()
	s.RenderHeader()
	s.Println(s.paint(styleBrightYellow, msgLoading))
}

// RenderStats prints the progress bar, the accuracy bar and the timing line.
func (s *Screen) RenderStats(st service.Stats) {
	progress := st.ProgressLabel()
	accuracy := st.AccuracyLabel()
	budget := service.BarBudget(s.Width(), progress, accuracy)

	filled, rest := service.SplitBar(st.CompletionRate, budget)
	s.Println(msgProgressLabel + s.buildBar(filled, rest, "", styleDim) + " " + progress)

	if st.Answered > 0 {
		correct, wrong := service.SplitBar(st.AccuracyRate, budget)
		s.Println(msgCorrectLabel + s.buildBar(correct, wrong, styleGreen, styleRed) + " " + accuracy)
	}
	s.Println()

	if timing := st.TimingLabel(); timing != "" {
		s.Println(center(timing, s.Width()))
	}
	s.Println()
}

// buildBar renders filled and remaining cells in their styles.
func (s *Screen) buildBar(filled, rest int, filledStyle, restStyle string) string {
	head := strings.Repeat(barCell, filled)
	if filledStyle != "" {
		head = s.paint(filledStyle, head)
	}
	return head + s.paint(restStyle, strings.Repeat(barCell, rest))
}

// center pads text to the middle of width; text wider than width is left as is.
func center(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RenderQuestion prints the question label, prompt and options.
func (s *Screen) RenderQuestion(q entities.Question) {
	s.Println(s.paint(styleCyan, msgQuestionID), s.paint(styleBrightYellow, q.Label()))
	s.Println(q.Question)
	s.Println()
	for _, a := range q.Answers {
		s.Println(a)
	}
	s.Println()
}

// RenderFeedback prints whether the answer was correct and, if not, the correct letters.
func (s *Screen) RenderFeedback(qa *entities.QuizAnswer) {
	if qa.IsCorrect {
		s.Println(s.paint(styleGreen, msgCorrect))
		return
	}

	s.Println(s.paint(styleRed, msgIncorrect))
	s.Printf(msgCorrectAnswers+"\n", strings.Join(qa.CorrectAnswers, ","))
}

func (s *Screen) key(k string) string {
	if k == keyQuit {
		return s.paint(styleBrightRed, k)
	}
	return s.paint(stylePurple, k)
}
