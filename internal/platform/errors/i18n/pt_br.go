package i18n

var ptBRMessages = map[Code]string{
	CodeInvalidArgument:    "{{.Argument}} inválido: {{.Reason}}.",
	CodeMalformedGenerator: "O gerador de átomos não produziu um átomo após {{.Depth}} chamadas.",
}
