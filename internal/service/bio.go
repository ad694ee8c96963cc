package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain"
	"github.com/hackmatehq/hackmate/internal/store"
)

var ErrIncompleteProfile = errors.New("profile needs role, experience and interests before generating a bio")

// bioTemplates hold the per-role bio skeletons. Placeholders: {interests}
// and {experience}.
var bioTemplates = map[domain.Role][]string{
	domain.RoleFrontend: {
		"Building pixel-perfect UIs with a passion for {interests}. {experience} developer who loves turning ideas into beautiful, functional interfaces. Looking for backend wizards to bring projects to life! 🎨",
		"Frontend developer specializing in {interests}. With {experience} experience, I focus on creating seamless user experiences. Ready to collaborate on innovative hackathon projects! ⚡",
		"Frontend dev passionate about {interests}. {experience} level. Let's build something amazing! 🚀",
		"Crafting intuitive interfaces | {experience} | {interests} enthusiast | Always learning 📚",
		"Want to create amazing UIs together? {experience} frontend engineer passionate about {interests}. Let's connect! 💡",
		"I turn complex ideas into simple, elegant interfaces. {experience}-level dev focusing on {interests}. Need a frontend partner? 👋",
		"Love making things look beautiful and work smoothly. {experience} frontend engineer exploring {interests}. Ready to hack and ship! 🌟",
	},
	domain.RoleBackend: {
		"Backend engineer specializing in {interests}. {experience} developer passionate about scalable architecture and clean code. Ready to build robust systems for your ideas! 🚀",
		"Building APIs and databases with focus on {interests}. {experience}-level engineer who loves solving complex problems. Looking for frontend partners to create complete solutions! ⚡",
		"Backend architect | {experience} | {interests} | Let's build scalable solutions 💻",
		"Server-side specialist focusing on {interests}. {experience} experience. Ready to collaborate! 🔥",
		"I make systems fast, secure, and reliable. {experience} backend dev passionate about {interests}. Let's architect something great! 🛠️",
		"Need solid backend infrastructure? {experience} engineer specializing in {interests}. Ready to bring your ideas to life! 💡",
		"Building the engines that power great products. {experience} backend developer excited about {interests}. Let's create together! 🚀",
	},
}

// interestPhrases give each interest tag a few natural-language stand-ins
// so generated bios do not all read like a tag list.
var interestPhrases = map[string][]string{
	"AI&ML":         {"machine learning", "neural networks", "data science", "intelligent systems"},
	"FinTech":       {"financial technology", "payment systems", "blockchain finance", "digital banking"},
	"HealthTech":    {"healthcare innovation", "medical technology", "digital health", "wellness solutions"},
	"EdTech":        {"educational technology", "learning platforms", "online education", "knowledge sharing"},
	"Blockchain":    {"decentralized systems", "smart contracts", "Web3", "distributed ledgers"},
	"GameDev":       {"game development", "interactive experiences", "gaming technology", "player engagement"},
	"IoT":           {"Internet of Things", "connected devices", "embedded systems", "smart technology"},
	"Cybersecurity": {"security systems", "threat protection", "secure applications", "data privacy"},
	"Social Impact": {"making a difference", "social good", "community solutions", "positive change"},
	"E-commerce":    {"online retail", "digital commerce", "shopping experiences", "marketplace solutions"},
	"Ecology":       {"environmental tech", "sustainability", "green solutions", "climate action"},
	"Economics":     {"economic systems", "market analysis", "financial modeling", "business intelligence"},
}

// BioService produces profile bios from the caller's role, experience and
// interests. Generation is template-based and random; each call uses its
// own rand source so concurrent requests cannot interleave draws.
type BioService struct {
	Store store.Store
}

// Generate builds one bio for userID's current profile.
func (s *BioService) Generate(ctx context.Context, userID string) (string, error) {
	suggestions, err := s.Suggestions(ctx, userID, 1)
	if err != nil {
		return "", err
	}
	return suggestions[0], nil
}

// Suggestions builds up to count distinct bios, rotating the interest
// list between suggestions for variety. No more suggestions than
// templates exist for the role.
func (s *BioService) Suggestions(ctx context.Context, userID string, count int) ([]string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !domain.ValidRole(user.Role) || !domain.ValidExperience(user.Experience) || len(user.Interests) == 0 {
		return nil, ErrIncompleteProfile
	}

	templates := bioTemplates[user.Role]
	if count < 1 {
		count = 1
	}
	if count > len(templates) {
		count = len(templates)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Draw distinct templates so no two suggestions share a skeleton.
	order := rng.Perm(len(templates))

	suggestions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		interests := formatInterests(user.Interests, i, rng)
		suggestions = append(suggestions, fillBioTemplate(templates[order[i]], user, interests))
	}
	return suggestions, nil
}

func fillBioTemplate(template string, user domain.User, interests string) string {
	experience := capitalize(string(user.Experience))
	filled := strings.Replace(template, "{interests}", interests, 1)
	return strings.Replace(filled, "{experience}", experience, 1)
}

// formatInterests turns the tag list into readable prose, at most three
// tags, each tag sometimes replaced by one of its phrases. rotation
// shifts which tags lead so multiple suggestions highlight different
// interests.
func formatInterests(interests []string, rotation int, rng *rand.Rand) string {
	if len(interests) == 0 {
		return "technology"
	}

	rotated := make([]string, 0, len(interests))
	offset := rotation % len(interests)
	rotated = append(rotated, interests[offset:]...)
	rotated = append(rotated, interests[:offset]...)

	top := rotated
	if len(top) > 3 {
		top = top[:3]
	}

	phrased := make([]string, len(top))
	for i, tag := range top {
		phrased[i] = tag
		if phrases, ok := interestPhrases[tag]; ok && rng.Intn(2) == 0 {
			phrased[i] = phrases[rng.Intn(len(phrases))]
		}
	}

	switch len(phrased) {
	case 1:
		return phrased[0]
	case 2:
		return fmt.Sprintf("%s and %s", phrased[0], phrased[1])
	default:
		last := fmt.Sprintf(", and %s", phrased[2])
		if len(interests) > 3 {
			last = ", and more"
		}
		return phrased[0] + ", " + phrased[1] + last
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
