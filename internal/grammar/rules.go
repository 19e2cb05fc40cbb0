package grammar

import "github.com/ghettovoice/abnf"

// Accept-* entry rules, relaxed from RFC 7231 the same way browsers and servers do:
//
//	OWS            = *( %x09-0D / SP )
//	tchar          = ALPHA / DIGIT / "_" / "!" / "#" / "$" / "%" / "^" / "&" / "*" / "-" / "+"
//	                 / "{" / "}" / "\" / "|" / "'" / "." / "`" / "~"
//	word-char      = ALPHA / DIGIT / "_"
//	token          = 1*tchar
//	coding         = OWS token OWS
//	language-range = OWS primary-tag [ OWS "-" OWS subtag ] OWS
//	primary-tag    = "*" / 1*8word-char
//	subtag         = "*" / 1*8word-char
//	media-range    = OWS type [ OWS "/" OWS subtype ] OWS
//	type           = token
//	subtype        = token
//	q-param        = OWS %x71 OWS "=" q-text
//	q-text         = *( %x00-3A / %x3C-FF )
//	qvalue         = "0" [ "." 1*3DIGIT ] / "1"
//	parameter      = param-name OWS "=" OWS param-value
//	param-name     = token
//	param-value    = DQUOTE *( %x00-21 / %x23-FF ) DQUOTE / "'" *( %x00-26 / %x28-FF ) "'" / *tchar

func char(c byte) abnf.Operator { return abnf.Literal(string(c), []byte{c}) }

func anyOf(key, chars string) abnf.Operator {
	oprts := make([]abnf.Operator, len(chars))
	for i := range len(chars) {
		oprts[i] = char(chars[i])
	}
	return abnf.AltFirst(key, oprts[0], oprts[1:]...)
}

func except(key string, c byte) abnf.Operator {
	return abnf.AltFirst(key,
		abnf.Range("low", []byte{0x00}, []byte{c - 1}),
		abnf.Range("high", []byte{c + 1}, []byte{0xFF}),
	)
}

var (
	digit = abnf.Range("DIGIT", []byte("0"), []byte("9"))
	alpha = abnf.AltFirst("ALPHA",
		abnf.Range("%x41-5A", []byte("A"), []byte("Z")),
		abnf.Range("%x61-7A", []byte("a"), []byte("z")),
	)
	ows = abnf.Repeat0Inf("OWS", abnf.AltFirst("WSP",
		abnf.Range("%x09-0D", []byte{0x09}, []byte{0x0D}),
		char(' '),
	))

	wordChar = abnf.AltFirst("word-char", alpha, digit, char('_'))
	tchar    = abnf.AltFirst("tchar", wordChar, anyOf("symbol", "!#$%^&*-+{}\\|'.`~"))
	token    = abnf.Repeat1Inf("token", tchar)
)

func tokenAs(key string) abnf.Operator { return abnf.Repeat1Inf(key, tchar) }

func langPart(key string) abnf.Operator {
	return abnf.AltFirst(key, char('*'), abnf.Repeat(key+"-chars", 1, 8, wordChar))
}

var coding = abnf.Concat("coding", ows, tokenAs("coding-value"), ows)

var languageRange = abnf.Concat(
	"language-range",
	ows,
	langPart("primary-tag"),
	abnf.Optional("[ OWS \"-\" OWS subtag ]", abnf.Concat("subtag-part", ows, char('-'), ows, langPart("subtag"))),
	ows,
)

var mediaRange = abnf.Concat(
	"media-range",
	ows,
	tokenAs("type"),
	abnf.Optional("[ OWS \"/\" OWS subtype ]", abnf.Concat("subtype-part", ows, char('/'), ows, tokenAs("subtype"))),
	ows,
)

var qParam = abnf.Concat(
	"q-param",
	ows,
	abnf.Range("%x71", []byte("q"), []byte("q")),
	ows,
	char('='),
	abnf.Repeat0Inf("q-text", except("q-char", ';')),
)

var qvalue = abnf.AltFirst(
	"qvalue",
	abnf.Concat("qvalue-zero", char('0'), abnf.Optional("[ \".\" 1*3DIGIT ]", abnf.Concat("fraction", char('.'), abnf.Repeat("digits", 1, 3, digit)))),
	char('1'),
)

var parameter = abnf.Concat(
	"parameter",
	tokenAs("param-name"),
	ows,
	char('='),
	ows,
	abnf.AltFirst(
		"param-value",
		abnf.Concat("dquoted", char('"'), abnf.Repeat0Inf("qdtext", except("qdchar", '"')), char('"')),
		abnf.Concat("squoted", char('\''), abnf.Repeat0Inf("qstext", except("qschar", '\'')), char('\'')),
		abnf.Repeat0Inf("ptoken", tchar),
	),
)
