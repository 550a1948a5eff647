package utils

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fixed visitor-facing messages. The English text doubles as the catalog key.
const (
	MsgInvalidCancelToken  = "The cancellation link is invalid."
	MsgExpiredCancelToken  = "The cancellation link has expired."
	MsgCancelConfirmed     = "Your appointment has been cancelled."
	MsgCancelNotConfirmed  = "Please confirm that you want to cancel the appointment."
	MsgAppointmentNotFound = "We could not find the appointment."
	MsgGenericFailure      = "Something went wrong. Please try again."
	MsgSessionMismatch     = "You are signed in as a different user than the one this booking belongs to."
	MsgNotAttachable       = "Your account cannot be attached to this booking yet."
	MsgNoServicesSelected  = "Select at least one service."
	MsgInvalidStartTime    = "The selected time is not valid."
	MsgInvalidProfile      = "Select who you want to book with."
	MsgIncompleteCode      = "Enter all six digits of the code."
	MsgMissingVerification = "The verification session has expired. Request a new code."
	MsgSessionExpired      = "Your booking session has expired. Please start again."
	MsgNotAuthenticated    = "Please sign in to continue."
	MsgRateLimited         = "Too many attempts. Wait a moment and try again."
)

var supportedTags = []language.Tag{
	language.English,
	language.Norwegian,
}

var matcher = language.NewMatcher(supportedTags)

func init() {
	nb := language.Norwegian
	set := func(key, text string) {
		_ = message.SetString(nb, key, text)
		_ = message.SetString(language.English, key, key)
	}
	set(MsgInvalidCancelToken, "Avbestillingslenken er ugyldig.")
	set(MsgExpiredCancelToken, "Avbestillingslenken har utløpt.")
	set(MsgCancelConfirmed, "Timen din er avbestilt.")
	set(MsgCancelNotConfirmed, "Bekreft at du vil avbestille timen.")
	set(MsgAppointmentNotFound, "Vi fant ikke timen.")
	set(MsgGenericFailure, "Noe gikk galt. Prøv igjen.")
	set(MsgSessionMismatch, "Du er logget inn som en annen bruker enn den bestillingen tilhører.")
	set(MsgNotAttachable, "Kontoen din kan ikke knyttes til bestillingen ennå.")
	set(MsgNoServicesSelected, "Velg minst én tjeneste.")
	set(MsgInvalidStartTime, "Det valgte tidspunktet er ikke gyldig.")
	set(MsgInvalidProfile, "Velg hvem du vil bestille hos.")
	set(MsgIncompleteCode, "Skriv inn alle seks sifrene i koden.")
	set(MsgMissingVerification, "Verifiseringen har utløpt. Be om en ny kode.")
	set(MsgSessionExpired, "Bestillingen din har utløpt. Vennligst start på nytt.")
	set(MsgNotAuthenticated, "Logg inn for å fortsette.")
	set(MsgRateLimited, "For mange forsøk. Vent litt og prøv igjen.")
}

// ResolveLanguage picks the best supported tag for the request, falling back to fallback.
func ResolveLanguage(r *http.Request, fallback string) language.Tag {
	def := language.Norwegian
	if tag, err := language.Parse(fallback); err == nil {
		_, idx, _ := matcher.Match(tag)
		def = supportedTags[idx]
	}
	if r == nil {
		return def
	}
	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return def
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return supportedTags[idx]
}

// Localize renders a catalog message for tag.
func Localize(tag language.Tag, key string) string {
	return message.NewPrinter(tag).Sprintf(key)
}
