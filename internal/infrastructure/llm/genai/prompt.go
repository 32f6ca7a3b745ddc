package genai

import "strings"

// The instruction block and examples below are prompt assets, not
// protocol: any wording works as long as the three-part output contract
// (category line, confidence line, suggested-reply body) reaches the model.

const instructions = `INSTRUÇÕES (OBRIGATÓRIO): Você é um assistente que analisa e classifica e-mails em duas categorias: PRODUTIVO ou IMPRODUTIVO.
- PRODUTIVO: e-mails que requerem ação ou resposta específica.
- IMPRODUTIVO: e-mails que não necessitam de ação imediata (piadas, convites sociais, mensagens sem relação direta ao trabalho).

SAÍDA OBRIGATÓRIA:
1) PRIMEIRA LINHA: apenas a CATEGORIA em maiúsculas: PRODUTIVO ou IMPRODUTIVO.
2) SEGUNDA LINHA: 'CONFIDENCE: <valor>' entre 0 e 1.
3) TERCEIRA LINHA EM DIANTE: 'RESPOSTA_SUGERIDA:' seguido do texto da resposta.

REGRAS PARA RESPOSTA_SUGERIDA:
- É PROIBIDO repetir ou reescrever o conteúdo do e-mail recebido.
- Escreva como se fosse um colega respondendo ao remetente.
- A resposta deve ser curta, clara e acrescentar valor (ex.: agradecer, confirmar recebimento, indicar próxima ação).
- Use tom educado e profissional.
- Preserve quebras de linha, acentuação e caracteres especiais.
- Use o nome do usuário para assinar a resposta (Atenciosamente, <usuário>), quando informado.
- Utilize os exemplos abaixo para entender o estilo e a formatação desejados.`

type promptExample struct {
	email             string
	category          string
	reason            string
	suggestedResponse string
}

var promptExamples = []promptExample{
	{
		email:             "Prezada equipe,\n\nFinalizei o relatório trimestral e o disponibilizei na pasta compartilhada. Marquei a reunião de revisão para quarta-feira, 15/10, às 14h. Peço que todos leiam os tópicos 3.2 e 4.1 antes da reunião.\n\nAtenciosamente,\nCarlos",
		category:          "PRODUTIVO",
		reason:            "O email contém entrega de relatório, link de reunião e instruções claras para preparação.",
		suggestedResponse: "Olá Carlos,\n\nObrigado pelo envio do relatório trimestral. Vamos revisar os tópicos 3.2 e 4.1 antes da reunião de quarta-feira (15/10 às 14h).\n\nAté lá,\nEquipe",
	},
	{
		email:             "Bom dia,\n\nEnviei a versão final do contrato com o cliente XYZ. Solicito que a equipe jurídica revise até amanhã, 29/09, e que finanças valide os valores da cláusula 5.3.\n\nAbraços,\nFernanda",
		category:          "PRODUTIVO",
		reason:            "O email trata de contrato, prazos de revisão e validação de cláusulas financeiras.",
		suggestedResponse: "Bom dia Fernanda,\n\nRecebemos o contrato. A equipe jurídica revisa os pontos legais até amanhã (29/09) e o financeiro valida a cláusula 5.3.\n\nTe daremos retorno antes do prazo.\n\nAbs,\nEquipe",
	},
	{
		email:             "Prezados,\n\nO cronograma atualizado do projeto Ômega já está disponível. Entrega do módulo de autenticação adiada para 20/10 e nova etapa de testes de integração entre 22/10 e 25/10. Confirmem se estão de acordo com as novas datas.\n\nObrigado,\nMariana",
		category:          "PRODUTIVO",
		reason:            "O email comunica mudanças relevantes no cronograma e pede validação da equipe.",
		suggestedResponse: "Oi Mariana,\n\nObrigado pelo cronograma atualizado. Nossa equipe confirma que está de acordo com as novas datas.\n\nAtenciosamente,\nEquipe",
	},
	{
		email:             "Boa tarde,\n\nAnexei o documento Indicadores_Q2.pdf com os resultados do segundo trimestre. Solicito que cada gestor prepare comentários sobre os indicadores de sua área para a reunião de sexta-feira, às 11h.\n\nAbraços,\nBeatriz",
		category:          "PRODUTIVO",
		reason:            "O email contém indicadores de desempenho e solicita análise da equipe antes da reunião.",
		suggestedResponse: "Boa tarde Beatriz,\n\nObrigado pelo envio do Indicadores_Q2.pdf. Cada gestor vai preparar os comentários de sua área antes da reunião de sexta às 11h.\n\nAbs,\nEquipe",
	},
	{
		email:             "Equipe,\n\nLembrando que o material para a apresentação do cliente XPTO deve ser finalizado até quinta-feira (02/10), às 18h. Ainda faltam os slides de resultados financeiros. Peço que cada responsável atualize sua parte até quarta-feira.\n\n[]s,\nRafael",
		category:          "PRODUTIVO",
		reason:            "O email define prazos claros, aponta pendências e reforça a entrega antecipada para revisão.",
		suggestedResponse: "Oi Rafael,\n\nObrigado pelo lembrete. Cada responsável atualiza sua parte até quarta-feira, incluindo os slides financeiros.\n\n[]s,\nEquipe",
	},
	{
		email:             "Oi pessoal,\n\nVocês acreditam que esqueci a marmita em casa hoje? kkkk\nAlguém topa pedir hambúrguer comigo no almoço?\n\nValeu,\nJoão",
		category:          "IMPRODUTIVO",
		reason:            "Assunto pessoal, sem relação com o trabalho.",
		suggestedResponse: "Oi João,\nVamos combinar o almoço pessoalmente.\nNo email, seguimos focando nos temas de trabalho. :)",
	},
	{
		email:             "Gente,\n\nOlhem esse vídeo hilário que encontrei! Não consigo parar de rir kkkk\n\nAbraços,\nPedro",
		category:          "IMPRODUTIVO",
		reason:            "Compartilhamento de entretenimento sem relevância profissional.",
		suggestedResponse: "Oi Pedro,\nEsse tipo de conteúdo é melhor nos grupos informais.\nVamos manter o email apenas para trabalho.",
	},
	{
		email:             "Oi,\n\nVocês viram a nova temporada daquela série? Achei o final meio forçado rsrs. Podemos comentar no café da tarde!\n\nBjs,\nLuiza",
		category:          "IMPRODUTIVO",
		reason:            "Discussão de série de TV não tem relação com tarefas ou entregas.",
		suggestedResponse: "Oi Luiza,\nCombinado, falamos da série no café.\nPor aqui seguimos só com os assuntos de trabalho. :)",
	},
	{
		email:             "Fala galera,\n\nBora pedir pizza na sexta? Quais sabores vcs curtem mais?\n\nAbs,\nThiago",
		category:          "IMPRODUTIVO",
		reason:            "Assunto de refeição, informal e sem relação com demandas da equipe.",
		suggestedResponse: "Oi Thiago,\nMelhor alinharmos esse tipo de coisa pessoalmente.\nNo email seguimos só com trabalho.",
	},
	{
		email:             "Oi,\n\nAlguém sabe se segunda é feriado municipal mesmo? Não queria vir à toa kkkk\n\nValeu,\nAndré",
		category:          "IMPRODUTIVO",
		reason:            "Informação facilmente obtida no calendário oficial, não precisa ser discutida por email corporativo.",
		suggestedResponse: "Oi André,\nConfirma no calendário oficial da empresa para ter certeza.\nAssim todos ficam alinhados.",
	},
}

func buildPrompt(text, username string) string {
	examples := make([]string, 0, len(promptExamples))
	for _, ex := range promptExamples {
		examples = append(examples, strings.Join([]string{
			"EMAIL: " + ex.email,
			"CATEGORIA: " + ex.category,
			"RAZAO: " + ex.reason,
			"RESPOSTA_SUGERIDA: " + ex.suggestedResponse,
		}, "\n"))
	}

	parts := []string{instructions}
	if username != "" {
		parts = append(parts, "Nome do usuário: "+username)
	}
	parts = append(parts,
		strings.Join(examples, "\n\n"),
		"ANALISE O SEGUINTE EMAIL A PARTIR DAQUI:",
		"TEXTO:\n"+text,
	)
	return strings.Join(parts, "\n\n")
}
