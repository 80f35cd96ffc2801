package constants

// Achievement ids. Perfect days are date scoped: "perfect-<date>".
const (
	AchievementThreeDayStreak = "3-day-streak"
	AchievementSevenDayStreak = "7-day-streak"
	AchievementPerfectPrefix  = "perfect-"
)

// Daily summary tiers
const (
	SummaryPerfect  = "🎉 Perfect day! All habits completed!"
	SummaryGreat    = "💪 Great job! You're doing amazing!"
	SummaryGood     = "👍 Good progress! Keep it up!"
	SummaryProgress = "🌱 Every step counts! Keep going!"
	SummaryNewDay   = "🌟 New day, new opportunities!"
)

// Toasts
const (
	ToastHabitDeleted        = "Habit deleted. Undo to restore."
	ToastHabitRestored       = "Habit restored!"
	ToastAchievementUnlocked = "🎉 Achievement unlocked: %s!"
	ToastEveningSummary      = "You completed %d/%d habits today! %s"
	ToastCelebration         = "⭐ Perfect day! 🎊"
)

// Landing shown when nobody is signed in
const LandingMessage = `Welcome to daymood: track your habits and how your days feel.

Sign in to start tracking:
  daymood signin <user-id>`
