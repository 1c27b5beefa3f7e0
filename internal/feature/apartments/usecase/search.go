package usecase

import "strings"

// stopWords は複数語クエリから取り除く語の集合です。照合は大文字小文字を区別します。
var stopWords = map[string]struct{}{
	"The": {}, "the": {},
	"A": {}, "a": {},
	"An": {}, "an": {},
	"Of": {}, "of": {},
	"At": {}, "at": {},
	"In": {}, "in": {},
}

// searchPattern は名前クエリを検索インデックスに当てるプレフィックスへ変換します。
//   - クエリを空白でトークンに分割する
//   - トークンが複数ある場合のみストップワードを除去する
//   - 1トークンならその先頭3文字、複数なら2番目のトークンの先頭3文字を使う
//
// 返り値は小文字で、該当するトークンがない場合は空文字列です。
func searchPattern(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}

	if len(tokens) > 1 {
		filtered := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			if _, ok := stopWords[tok]; !ok {
				filtered = append(filtered, tok)
			}
		}
		tokens = filtered
	}

	var prefix string
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		prefix = tokens[0]
	default:
		prefix = tokens[1]
	}

	if r := []rune(prefix); len(r) > 3 {
		prefix = string(r[:3])
	}
	return strings.ToLower(prefix)
}
