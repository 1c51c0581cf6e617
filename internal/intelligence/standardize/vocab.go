package standardize

import (
	"regexp"
	"strings"

	"github.com/turtacn/MissionIntelligence/internal/intelligence/heuristic"
)

// termList matches whole terms in folded (lowercase, accent-free) text.
type termList struct {
	terms []string
	res   []*regexp.Regexp
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z')
}

func newTermList(terms ...string) termList {
	l := termList{terms: terms, res: make([]*regexp.Regexp, len(terms))}
	for i, t := range terms {
		pat := regexp.QuoteMeta(t)
		if isWordByte(t[0]) {
			pat = `\b` + pat
		}
		if isWordByte(t[len(t)-1]) {
			pat += `\b`
		}
		l.res[i] = regexp.MustCompile(pat)
	}
	return l
}

// matches returns the terms found in text, in list order.
func (l termList) matches(text string) []string {
	var out []string
	for i, re := range l.res {
		if re.MatchString(text) {
			out = append(out, l.terms[i])
		}
	}
	return out
}

func (l termList) count(text string) int { return len(l.matches(text)) }

func (l termList) any(text string) bool {
	for _, re := range l.res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Technology categories.
const (
	TechFrontend = "Frontend"
	TechBackend  = "Backend"
	TechDatabase = "Database"
	TechCloud    = "Cloud"
	TechMobile   = "Mobile"
	TechAIML     = "AI-ML"
	TechDevOps   = "DevOps"
)

type techCategory struct {
	name  string
	terms termList
}

var techCategories = []techCategory{
	{TechFrontend, newTermList("react", "vue.js", "vuejs", "angular", "svelte", "next.js", "nextjs", "html", "css",
		"javascript", "typescript", "frontend", "front-end", "tailwind", "jquery")},
	{TechBackend, newTermList("api", "node.js", "nodejs", "express", "django", "flask", "laravel", "symfony",
		"spring boot", "backend", "back-end", "php", "ruby on rails", "golang", "graphql", "fastapi", "nestjs")},
	{TechDatabase, newTermList("sql", "postgresql", "postgres", "mysql", "mongodb", "redis", "base de donnees",
		"database", "sqlite", "elasticsearch", "firebase")},
	{TechCloud, newTermList("aws", "azure", "gcp", "google cloud", "serverless", "lambda", "cloud", "s3", "heroku", "vercel")},
	{TechMobile, newTermList("ios", "android", "flutter", "react native", "swift", "kotlin", "application mobile",
		"app mobile", "mobile app")},
	{TechAIML, newTermList("machine learning", "intelligence artificielle", "deep learning", "nlp", "chatbot",
		"tensorflow", "pytorch", "llm", "gpt", "vision par ordinateur", "computer vision")},
	{TechDevOps, newTermList("docker", "kubernetes", "ci/cd", "devops", "terraform", "jenkins", "github actions",
		"gitlab ci", "ansible", "deploiement continu")},
}

// displayNames gives the usual spelling of technology terms.
var displayNames = map[string]string{
	"react": "React", "vue.js": "Vue.js", "vuejs": "Vue.js", "angular": "Angular", "svelte": "Svelte",
	"next.js": "Next.js", "nextjs": "Next.js", "html": "HTML", "css": "CSS", "javascript": "JavaScript",
	"typescript": "TypeScript", "tailwind": "Tailwind CSS", "jquery": "jQuery",
	"api": "API", "node.js": "Node.js", "nodejs": "Node.js", "express": "Express", "django": "Django",
	"flask": "Flask", "laravel": "Laravel", "symfony": "Symfony", "spring boot": "Spring Boot", "php": "PHP",
	"ruby on rails": "Ruby on Rails", "golang": "Go", "graphql": "GraphQL", "fastapi": "FastAPI", "nestjs": "NestJS",
	"sql": "SQL", "postgresql": "PostgreSQL", "postgres": "PostgreSQL", "mysql": "MySQL", "mongodb": "MongoDB",
	"redis": "Redis", "sqlite": "SQLite", "elasticsearch": "Elasticsearch", "firebase": "Firebase",
	"aws": "AWS", "azure": "Azure", "gcp": "GCP", "google cloud": "Google Cloud", "s3": "S3",
	"ios": "iOS", "android": "Android", "flutter": "Flutter", "react native": "React Native", "swift": "Swift",
	"kotlin": "Kotlin", "nlp": "NLP", "llm": "LLM", "gpt": "GPT", "tensorflow": "TensorFlow", "pytorch": "PyTorch",
	"docker": "Docker", "kubernetes": "Kubernetes", "ci/cd": "CI/CD", "terraform": "Terraform", "jenkins": "Jenkins",
	"github actions": "GitHub Actions", "gitlab ci": "GitLab CI", "ansible": "Ansible",
}

func displayName(term string) string {
	if d, ok := displayNames[term]; ok {
		return d
	}
	return capitalize(term)
}

var architectureIndicators = newTermList(
	"microservices", "micro-services", "big data", "temps reel", "real-time", "real time", "scalabilite",
	"scalability", "haute disponibilite", "high availability", "multi-tenant", "architecture distribuee",
	"distributed", "event-driven", "blockchain", "load balancing", "cache distribue", "haute performance",
	"high performance", "streaming", "websocket",
)

var qualityVocabulary = newTermList(
	"objectif", "objectifs", "fonctionnalite", "fonctionnalites", "utilisateur", "utilisateurs", "livrable",
	"livrables", "specification", "specifications", "exigence", "exigences", "performance", "securite",
	"responsive", "interface", "tableau de bord", "dashboard", "paiement", "authentification", "documentation",
	"tests", "maintenance", "goal", "goals", "feature", "features", "deliverable", "deliverables", "requirement",
	"requirements",
)

var valueIndicators = newTermList(
	"augmenter", "ameliorer", "optimiser", "reduire", "automatiser", "croissance", "chiffre d'affaires",
	"rentabilite", "productivite", "efficacite", "conversion", "ventes", "revenue", "increase", "improve",
	"optimize", "reduce", "automate", "growth", "sales", "roi",
)

var strategicKeywords = newTermList(
	"strategique", "innovation", "transformation digitale", "digitalisation", "competitif", "leader",
	"expansion", "international", "strategic", "competitive", "differenciation", "partenariat", "partnership",
	"scale", "scaler",
)

var marketImpactTerms = newTermList("marche", "market", "clients", "customers", "ventes", "sales", "concurrence", "competition")

var userBenefitTerms = newTermList(
	"utilisateur", "utilisateurs", "users", "user", "experience utilisateur", "ux", "facile", "simple",
	"intuitif", "intuitive", "accessibilite", "satisfaction",
)

var competitiveTerms = newTermList(
	"unique", "innovant", "innovante", "innovative", "differenciant", "avantage concurrentiel",
	"competitive advantage", "premier", "first",
)

var precisionAdverbs = newTermList(
	"precisement", "exactement", "notamment", "specifiquement", "obligatoirement", "imperativement",
	"au moins", "maximum", "minimum", "environ", "exactly", "specifically", "at least", "must",
)

var timelineCues = newTermList(
	"semaine", "semaines", "mois", "jour", "jours", "delai", "deadline", "urgent", "urgence", "asap",
	"date", "livraison", "echeance", "week", "weeks", "month", "months", "days", "rapidement",
)

var businessOutcomeTerms = newTermList(
	"augmenter", "ameliorer", "optimiser", "reduire", "automatiser", "clients", "ventes", "conversion",
	"utilisateurs", "croissance", "increase", "improve", "customers", "sales", "growth",
)

var constraintTerms = newTermList(
	"doit", "doivent", "devra", "devront", "must", "should", "exigence", "contrainte", "requis",
	"obligatoire", "compatible", "conforme", "rgpd", "gdpr",
)

var frenchStopWords = map[string]bool{
	"de": true, "du": true, "des": true, "le": true, "la": true, "les": true, "et": true, "ou": true,
	"un": true, "une": true, "pour": true, "avec": true, "en": true, "a": true, "au": true, "aux": true,
	"sur": true, "dans": true, "par": true, "d'un": true, "d'une": true,
}

// Mission categories.
const (
	CategoryWeb        = "web-development"
	CategoryMobile     = "mobile-development"
	CategoryDataAI     = "data-ai"
	CategoryDesign     = "design"
	CategoryMarketing  = "marketing"
	CategoryWriting    = "writing"
	CategoryConsulting = "consulting"
	CategoryOther      = "other"
)

type categoryPatterns struct {
	name     string
	patterns termList
}

var categoryTable = []categoryPatterns{
	{CategoryWeb, newTermList("site", "web", "e-commerce", "ecommerce", "wordpress", "shopify", "landing page",
		"frontend", "backend", "react", "vue.js", "angular", "html", "boutique en ligne")},
	{CategoryMobile, newTermList("application mobile", "app mobile", "ios", "android", "flutter", "react native",
		"app store", "play store", "smartphone")},
	{CategoryDataAI, newTermList("data", "donnees", "machine learning", "intelligence artificielle", "analyse",
		"dashboard", "tableau de bord", "python", "prediction", "chatbot")},
	{CategoryDesign, newTermList("design", "logo", "maquette", "figma", "ui", "ux", "charte graphique",
		"identite visuelle", "illustration")},
	{CategoryMarketing, newTermList("marketing", "seo", "sea", "reseaux sociaux", "social media", "campagne",
		"publicite", "newsletter", "emailing")},
	{CategoryWriting, newTermList("redaction", "article", "articles", "contenu", "copywriting", "traduction",
		"blog", "fiches produits")},
	{CategoryConsulting, newTermList("conseil", "audit", "strategie", "accompagnement", "formation",
		"consulting", "coaching")},
}

func knownCategory(c string) bool {
	for _, cat := range categoryTable {
		if cat.name == c {
			return true
		}
	}
	return c == CategoryOther
}

// Price positionings.
const (
	PositionPremium      = "premium"
	PositionStandardPlus = "standard-plus"
	PositionStandard     = "standard"
	PositionBudget       = "budget"
)

var positionMultipliers = map[string]float64{
	PositionPremium:      1.4,
	PositionStandardPlus: 1.2,
	PositionStandard:     1.0,
	PositionBudget:       0.8,
}

type marketProfile struct {
	demand      string
	positioning string
	seasonality string
}

var marketTable = map[string]marketProfile{
	CategoryWeb:        {"high", PositionStandard, "stable"},
	CategoryMobile:     {"high", PositionStandardPlus, "stable"},
	CategoryDataAI:     {"high", PositionPremium, "growing"},
	CategoryDesign:     {"medium", PositionStandard, "stable"},
	CategoryMarketing:  {"medium", PositionStandard, "seasonal"},
	CategoryWriting:    {"medium", PositionBudget, "stable"},
	CategoryConsulting: {"medium", PositionStandardPlus, "stable"},
	CategoryOther:      {"medium", PositionStandard, "stable"},
}

type skillEntry struct {
	name    string
	direct  termList
	related termList
}

func skill(name string, related ...string) skillEntry {
	return skillEntry{name: name, direct: newTermList(heuristic.Fold(name)), related: newTermList(related...)}
}

var categorySkills = map[string][]skillEntry{
	CategoryWeb: {
		skill("React", "jsx", "hooks", "composant", "composants", "spa"),
		skill("Vue.js", "vuex", "nuxt"),
		skill("Angular", "rxjs"),
		skill("Node.js", "npm", "express"),
		skill("PHP", "composer"),
		skill("Symfony", "twig", "doctrine"),
		skill("Laravel", "eloquent", "blade"),
		skill("WordPress", "woocommerce", "plugin", "theme"),
		skill("Shopify", "liquid", "boutique"),
		skill("JavaScript", "js", "frontend"),
		skill("TypeScript", "ts"),
		skill("HTML", "integration", "css"),
		skill("API", "rest", "endpoint", "endpoints", "webhook"),
		skill("SQL", "base de donnees", "requetes"),
	},
	CategoryMobile: {
		skill("Flutter", "dart"),
		skill("React Native", "expo"),
		skill("Swift", "ios", "xcode"),
		skill("Kotlin", "android", "jetpack"),
		skill("Firebase", "notifications", "push"),
	},
	CategoryDataAI: {
		skill("Python", "pandas", "numpy", "jupyter"),
		skill("Machine Learning", "modele", "prediction", "entrainement"),
		skill("SQL", "requetes", "entrepot"),
		skill("Power BI", "reporting", "tableau de bord", "dashboard"),
		skill("NLP", "texte", "langage"),
	},
	CategoryDesign: {
		skill("Figma", "maquette", "prototype", "wireframe"),
		skill("UI Design", "interface", "ui"),
		skill("UX Design", "parcours", "ux", "ergonomie"),
		skill("Illustrator", "logo", "vectoriel"),
		skill("Photoshop", "retouche", "visuel"),
	},
	CategoryMarketing: {
		skill("SEO", "referencement", "mots-cles"),
		skill("Google Ads", "sea", "campagne"),
		skill("Social Media", "reseaux sociaux", "instagram", "linkedin"),
		skill("Emailing", "newsletter", "mailchimp"),
	},
	CategoryWriting: {
		skill("Copywriting", "redaction", "contenu"),
		skill("SEO Writing", "referencement", "articles"),
		skill("Traduction", "anglais", "langue"),
	},
	CategoryConsulting: {
		skill("Audit", "analyse", "diagnostic"),
		skill("Gestion de projet", "planning", "pilotage", "agile"),
		skill("Formation", "atelier", "coaching"),
	},
}

// techSkills are skills implied by a detected technology category.
var techSkills = map[string][]string{
	TechFrontend: {"JavaScript"},
	TechBackend:  {"API"},
	TechDatabase: {"SQL"},
	TechCloud:    {"AWS"},
	TechMobile:   {"Flutter"},
	TechAIML:     {"Python", "Machine Learning"},
	TechDevOps:   {"Docker"},
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

//Personal.AI order the ending
