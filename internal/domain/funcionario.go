package domain

// Funcionario is the primary managed entity. Senha holds the plaintext
// password only between request decoding and the persistence gateway,
// which hashes it before any write; it is never serialized back out.
type Funcionario struct {
	ID      int64  `json:"idFuncionario"`
	Nome    string `json:"nomeFuncionario"`
	Email   string `json:"email"`
	Usuario string `json:"usuario"`
	Senha   string `json:"-"`
	Cargo   Cargo  `json:"cargo"`
}

// Claims is the minimal identity payload embedded in an issued session
// token. Cargo and Nome are pointers so an absent value serializes as
// null rather than an empty string.
type Claims struct {
	Email   string  `json:"email"`
	Usuario string  `json:"usuario"`
	Cargo   *string `json:"cargo"`
	Nome    *string `json:"nomeFuncionario"`
	ID      int64   `json:"idFuncionario"`
}
