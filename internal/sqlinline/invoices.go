package sqlinline

const QInsertPendingInvoice = `--sql be994742-5051-4536-b37c-692671fe663c
insert into pending_invoices(payment_hash, campaign_id, amount, payment_request, contributor_name, state, created_at, expires_at)
values ($1::text, $2::uuid, $3::bigint, $4::text, $5::text, 'pending', now(), $6::timestamptz);
`

const QListPendingInvoices = `--sql 90e4747a-4a90-4e9a-8168-966b8c86bca3
select payment_hash, campaign_id, amount, payment_request, contributor_name, state, created_at, expires_at
from pending_invoices
where state = 'pending'
order by created_at asc
limit $1::int;
`

const QMarkInvoiceState = `--sql 332b8176-e2dd-4dbf-959e-e87c64943d72
update pending_invoices
set state = $2::text
where payment_hash = $1::text and state = 'pending';
`
