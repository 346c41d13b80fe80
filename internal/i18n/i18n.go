// Package i18n translates user-facing messages of the laundry service.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has its own messages.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		if fallbackMsg, exists := t.messages[DefaultLocale][key]; exists {
			return fallbackMsg
		}
		return key
	}

	return msg
}

// Translatef translates key and formats the result with args.
func (t *Translator) Translatef(key, locale string, args ...interface{}) string {
	msg := t.Translate(key, locale)
	if len(args) == 0 || msg == key {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// GetLocale extracts the locale from the first Accept-Language entry
// ("pt-BR,pt;q=0.9" gives "pt"), falling back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	lang := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)
	if GetTranslator().Supports(lang) {
		return lang
	}

	return DefaultLocale
}

func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":        "Invalid request",
			"error.invalid_request_body":   "Invalid request body",
			"error.internal_error":         "An unexpected error occurred",
			"error.unauthorized":           "Unauthorized",
			"error.invalid_credentials":    "Invalid username or password",
			"error.api_key_required":       "API key is required",
			"error.invalid_api_key":        "Invalid API key",
			"error.forbidden":              "Forbidden",
			"error.not_found":              "Not found",
			"error.rate_limit_exceeded":    "Too many requests, please try again later",
			"error.invalid_token":          "Invalid or expired token",
			"error.token_required":         "Authentication token is required",
			"error.timeout":                "The request took too long to complete",
			"error.order.unknown_item":     "Unknown item %q",
			"error.order.invalid_quantity": "Quantity for %q must be a non-negative integer, got %s",
			"error.order.solver_failure":   "Could not compute an optimal price for this order",
			"error.quote_not_found":        "Quote not found or expired",
			"error.catalog.invalid":        "Invalid catalog: %s: %s",
			"error.catalog.read_only":      "Catalog changes require a database",
			"error.service_unavailable":    "Service temporarily unavailable",

			"success.order_optimized": "Order priced successfully",
			"success.catalog_updated": "Catalog updated successfully",
		},
		"pt": {
			"error.invalid_request":        "Requisição inválida",
			"error.invalid_request_body":   "Corpo da requisição inválido",
			"error.internal_error":         "Ocorreu um erro inesperado",
			"error.unauthorized":           "Não autorizado",
			"error.invalid_credentials":    "Usuário ou senha inválidos",
			"error.api_key_required":       "Chave de API é obrigatória",
			"error.invalid_api_key":        "Chave de API inválida",
			"error.forbidden":              "Proibido",
			"error.not_found":              "Não encontrado",
			"error.rate_limit_exceeded":    "Muitas requisições, tente novamente mais tarde",
			"error.invalid_token":          "Token inválido ou expirado",
			"error.token_required":         "Token de autenticação é obrigatório",
			"error.timeout":                "A requisição demorou demais para ser concluída",
			"error.order.unknown_item":     "Item desconhecido %q",
			"error.order.invalid_quantity": "A quantidade de %q deve ser um inteiro não negativo, recebido %s",
			"error.order.solver_failure":   "Não foi possível calcular o preço ótimo deste pedido",
			"error.quote_not_found":        "Orçamento não encontrado ou expirado",
			"error.catalog.invalid":        "Tabela de preços inválida: %s: %s",
			"error.catalog.read_only":      "Alterar a tabela de preços exige um banco de dados",
			"error.service_unavailable":    "Serviço temporariamente indisponível",

			"success.order_optimized": "Pedido orçado com sucesso",
			"success.catalog_updated": "Tabela de preços atualizada com sucesso",
		},
		"nl": {
			"error.invalid_request":        "Ongeldig verzoek",
			"error.invalid_request_body":   "Ongeldige aanvraag body",
			"error.internal_error":         "Er is een onverwachte fout opgetreden",
			"error.unauthorized":           "Niet geautoriseerd",
			"error.invalid_credentials":    "Ongeldige gebruikersnaam of wachtwoord",
			"error.api_key_required":       "API-sleutel is vereist",
			"error.invalid_api_key":        "Ongeldige API-sleutel",
			"error.forbidden":              "Verboden",
			"error.not_found":              "Niet gevonden",
			"error.rate_limit_exceeded":    "Te veel verzoeken, probeer het later opnieuw",
			"error.invalid_token":          "Ongeldig of verlopen token",
			"error.token_required":         "Authenticatietoken is vereist",
			"error.timeout":                "Het verzoek duurde te lang",
			"error.order.unknown_item":     "Onbekend artikel %q",
			"error.order.invalid_quantity": "Aantal voor %q moet een niet-negatief geheel getal zijn, ontvangen %s",
			"error.order.solver_failure":   "Er kon geen optimale prijs voor deze bestelling worden berekend",
			"error.quote_not_found":        "Offerte niet gevonden of verlopen",
			"error.catalog.invalid":        "Ongeldige prijslijst: %s: %s",
			"error.catalog.read_only":      "Voor het wijzigen van de prijslijst is een database nodig",
			"error.service_unavailable":    "Dienst tijdelijk niet beschikbaar",

			"success.order_optimized": "Bestelling succesvol geprijsd",
			"success.catalog_updated": "Prijslijst succesvol bijgewerkt",
		},
	}
}
