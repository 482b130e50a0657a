package lang

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF     TokenType = iota // end of input
	TokenIdent                    // variable name
	TokenNumber                   // integer literal
	TokenSkip                     // 'skip'
	TokenIf                       // 'if'
	TokenThen                     // 'then'
	TokenElse                     // 'else'
	TokenFi                       // 'fi'
	TokenWhile                    // 'while'
	TokenDo                       // 'do'
	TokenOd                       // 'od'
	TokenInvariant                // 'invariant'
	TokenAnd                      // 'and'
	TokenOr                       // 'or'
	TokenNot                      // 'not'
	TokenTrue                     // 'true'
	TokenFalse                    // 'false'
	TokenAssign                   // ':='
	TokenPlus                     // '+'
	TokenMinus                    // '-'
	TokenStar                     // '*'
	TokenSlash                    // '/'
	TokenPercent                  // '%'
	TokenEq                       // '='
	TokenNeq                      // '!='
	TokenLt                       // '<'
	TokenLte                      // '<='
	TokenGt                       // '>'
	TokenGte                      // '>='
	TokenArrow                    // '->'
	TokenSemi                     // ';'
	TokenLParen                   // '('
	TokenRParen                   // ')'
	TokenLBrace                   // '{'
	TokenRBrace                   // '}'
)

// Token is a single lexical token with its source position.
type Token struct {
	Type  TokenType
	Value string
	Pos   Pos
}

// keywords maps reserved words to their token types. Identifiers are looked
// up here after scanning.
var keywords = map[string]TokenType{
	"skip":      TokenSkip,
	"if":        TokenIf,
	"then":      TokenThen,
	"else":      TokenElse,
	"fi":        TokenFi,
	"while":     TokenWhile,
	"do":        TokenDo,
	"od":        TokenOd,
	"invariant": TokenInvariant,
	"and":       TokenAnd,
	"or":        TokenOr,
	"not":       TokenNot,
	"true":      TokenTrue,
	"false":     TokenFalse,
}

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenSkip:
		return "'skip'"
	case TokenIf:
		return "'if'"
	case TokenThen:
		return "'then'"
	case TokenElse:
		return "'else'"
	case TokenFi:
		return "'fi'"
	case TokenWhile:
		return "'while'"
	case TokenDo:
		return "'do'"
	case TokenOd:
		return "'od'"
	case TokenInvariant:
		return "'invariant'"
	case TokenAnd:
		return "'and'"
	case TokenOr:
		return "'or'"
	case TokenNot:
		return "'not'"
	case TokenTrue:
		return "'true'"
	case TokenFalse:
		return "'false'"
	case TokenAssign:
		return "':='"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenPercent:
		return "'%'"
	case TokenEq:
		return "'='"
	case TokenNeq:
		return "'!='"
	case TokenLt:
		return "'<'"
	case TokenLte:
		return "'<='"
	case TokenGt:
		return "'>'"
	case TokenGte:
		return "'>='"
	case TokenArrow:
		return "'->'"
	case TokenSemi:
		return "';'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	default:
		return "unknown token"
	}
}
