package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// IntegrationType identifies which member system the gym runs.
type IntegrationType string

const (
	IntegrationEVO   IntegrationType = "EVO"   // EVO system, credentials collected
	IntegrationOther IntegrationType = "OUTRO" // another system, attachments collected
	IntegrationNone  IntegrationType = "NAO"   // no system
)

// StringArray stores a JSON-encoded string list in a TEXT column so the same
// model works on PostgreSQL and the sqlite test database.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	return json.Unmarshal(asBytes(value), s)
}

// FileDescriptor is the client-side shape of a file before a real upload:
// just name, size and declared type. Once the bytes land, the Attachment
// entity is the source of truth.
type FileDescriptor struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

func (d FileDescriptor) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *FileDescriptor) Scan(value interface{}) error {
	if value == nil {
		*d = FileDescriptor{}
		return nil
	}
	return json.Unmarshal(asBytes(value), d)
}

// FileDescriptorList is a JSON-encoded list of descriptors.
type FileDescriptorList []FileDescriptor

func (l FileDescriptorList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FileDescriptorList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	return json.Unmarshal(asBytes(value), l)
}

// FaqItem is one guided question/answer from the onboarding FAQ section.
type FaqItem struct {
	Categoria    string `json:"categoria"`
	PerguntaGuia string `json:"perguntaGuia"`
	Resposta     string `json:"resposta"`
}

// FaqItemList is a JSON-encoded list of FAQ items.
type FaqItemList []FaqItem

func (l FaqItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FaqItemList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	return json.Unmarshal(asBytes(value), l)
}

func asBytes(value interface{}) []byte {
	switch v := value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// CompanyProfile is the required identity block of the onboarding form.
type CompanyProfile struct {
	NomeEmpresa      string `gorm:"index;not null" json:"nomeEmpresa"`
	CNPJ             string `gorm:"not null" json:"cnpj"`
	EmailContato     string `gorm:"not null" json:"emailContato"`
	EmailNotaFiscal  string `gorm:"not null" json:"emailNotaFiscal"`
	Telefone         string `gorm:"not null" json:"telefone"`
	ResponsavelGeral string `gorm:"not null" json:"responsavelGeral"`
}

// Responsavel is a named contact (financial or operations).
type Responsavel struct {
	Nome     string `gorm:"not null" json:"nome"`
	Email    string `gorm:"not null" json:"email"`
	Telefone string `gorm:"not null" json:"telefone"`
}

// EvoConfig holds the EVO system credentials, collected when
// IntegracaoTipo == EVO.
type EvoConfig struct {
	Token           string `json:"token"`
	LinkSistema     string `json:"linkSistema"`
	LoginUsuarioJai string `json:"loginUsuarioJai"`
	SenhaUsuarioJai string `json:"senhaUsuarioJai"`
}

// ContractsConfig carries the EVO contract identifiers.
type ContractsConfig struct {
	ContratosEvo StringArray `gorm:"type:text" json:"contratosEvo"`
}

// WhatsappConfig is the messaging setup section. All fields optional.
type WhatsappConfig struct {
	DataPreferida    string         `json:"dataPreferida"`
	HorarioPreferido string         `json:"horarioPreferido"`
	Numero           string         `json:"numero"`
	Observacoes      string         `gorm:"type:text" json:"observacoes"`
	LogoEmpresa      FileDescriptor `gorm:"type:text" json:"logoEmpresa"`
}

// RobotConfig is the assistant personality section. Tons is single-select on
// the client but stored as a list like the others.
type RobotConfig struct {
	Nome            string      `json:"nome"`
	Caracteristicas StringArray `gorm:"type:text" json:"caracteristicas"`
	Personalidade   StringArray `gorm:"type:text" json:"personalidade"`
	Tons            StringArray `gorm:"type:text" json:"tons"`
}

// ExtendedFaq is the free-text answer block of the extended FAQ section.
type ExtendedFaq struct {
	ConveniosPlanos      string `gorm:"type:text" json:"conveniosPlanos"`
	ConveniosInclusos    string `gorm:"type:text" json:"conveniosInclusos"`
	EspacoKids           string `gorm:"type:text" json:"espacoKids"`
	MenoresIdade         string `gorm:"type:text" json:"menoresIdade"`
	Estacionamento       string `gorm:"type:text" json:"estacionamento"`
	ObjetosPerdidos      string `gorm:"type:text" json:"objetosPerdidos"`
	CancelamentoProcesso string `gorm:"type:text" json:"cancelamentoProcesso"`
	PlanosDiarias        string `gorm:"type:text" json:"planosDiarias"`
	PlanosAquaticos      string `gorm:"type:text" json:"planosAquaticos"`
	PersonalTrainer      string `gorm:"type:text" json:"personalTrainer"`
	ModalidadesExtras    string `gorm:"type:text" json:"modalidadesExtras"`
	GradeDescricao       string `gorm:"type:text" json:"gradeDescricao"`
	PoliticaAcompanhante string `gorm:"type:text" json:"politicaAcompanhante"`
	AgendamentoApp       string `gorm:"type:text" json:"agendamentoApp"`
	EquipamentosLista    string `gorm:"type:text" json:"equipamentosLista"`
	FormasPagamento      string `gorm:"type:text" json:"formasPagamento"`
	ChavePix             string `gorm:"type:text" json:"chavePix"`
	Parcelamento         string `gorm:"type:text" json:"parcelamento"`
	ConfirmacaoPix       string `gorm:"type:text" json:"confirmacaoPix"`
	PerguntasEspecificas string `gorm:"type:text" json:"perguntasEspecificas"`
}

// Company is one onboarded business: the full form submitted in a single
// create call. Required groups live in dedicated columns; optional sections
// default to empty.
type Company struct {
	ID uint `gorm:"primarykey" json:"id"`

	Profile               CompanyProfile `gorm:"embedded;embeddedPrefix:company_" json:"company"`
	ResponsavelFinanceiro Responsavel    `gorm:"embedded;embeddedPrefix:fin_" json:"responsavelFinanceiro"`
	ResponsavelOperacao   Responsavel    `gorm:"embedded;embeddedPrefix:ops_" json:"responsavelOperacao"`

	ContratoAceito bool            `gorm:"not null" json:"contratoAceito"`
	IntegracaoTipo IntegrationType `gorm:"not null" json:"integracaoTipo"`

	// Filled when IntegracaoTipo == OUTRO
	OutroSistema            string             `json:"outroSistema"`
	OutroSistemaObservacoes string             `gorm:"type:text" json:"outroSistemaObservacoes"`
	OutroSistemaArquivos    FileDescriptorList `gorm:"type:text" json:"outroSistemaArquivos"`

	// Filled when IntegracaoTipo == EVO
	Evo       EvoConfig       `gorm:"embedded;embeddedPrefix:evo_" json:"evo"`
	Contracts ContractsConfig `gorm:"embedded;embeddedPrefix:contracts_" json:"contracts"`

	Whatsapp    WhatsappConfig `gorm:"embedded;embeddedPrefix:whatsapp_" json:"whatsapp"`
	Robot       RobotConfig    `gorm:"embedded;embeddedPrefix:robot_" json:"robot"`
	Faq         FaqItemList    `gorm:"type:text" json:"faq"`
	ExtendedFaq ExtendedFaq    `gorm:"embedded;embeddedPrefix:faq_" json:"extendedFaq"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
